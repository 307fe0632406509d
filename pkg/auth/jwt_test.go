package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatorConfig() JWTGeneratorConfig {
	return JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     "test-secret",
		Issuer:        "snapboard",
		Audience:      []string{"snapboard-api"},
		ExpiryTime:    time.Hour,
	}
}

func validatorConfig() JWTConfig {
	return JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     "test-secret",
		Issuer:        "snapboard",
		Audience:      []string{"snapboard-api"},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	generator, err := NewJWTGenerator(generatorConfig())
	require.NoError(t, err)
	validator, err := NewJWTValidator(validatorConfig())
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "alice@example.com", []string{"member"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, []string{"member"}, claims.Roles)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "snapboard", claims.Issuer)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	generator, err := NewJWTGenerator(generatorConfig())
	require.NoError(t, err)

	cfg := validatorConfig()
	cfg.SecretKey = "other-secret"
	validator, err := NewJWTValidator(cfg)
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "alice@example.com", nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := generatorConfig()
	cfg.ExpiryTime = -time.Minute
	generator, err := NewJWTGenerator(cfg)
	require.NoError(t, err)

	validator, err := NewJWTValidator(validatorConfig())
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "alice@example.com", nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestNewJWTGeneratorRequiresSecret(t *testing.T) {
	cfg := generatorConfig()
	cfg.SecretKey = ""
	_, err := NewJWTGenerator(cfg)
	assert.Error(t, err)
}
