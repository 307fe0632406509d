package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DevelopmentSecret is the fallback signing secret used outside
// production when no secret is configured. Validation and generation
// must agree on it.
const DevelopmentSecret = "development-secret-change-in-production"

var (
	// ErrExpiredToken indicates the token's expiry has passed
	ErrExpiredToken = errors.New("token has expired")
	// ErrInvalidSignature indicates the token signature did not verify
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrInvalidToken indicates a malformed or otherwise unacceptable token
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the application claims carried in an access token. The email
// is the externally authenticated identity the services resolve accounts
// from; this package never issues identities, only verifies them.
type Claims struct {
	UserID string   `json:"uid"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTConfig configures token validation
type JWTConfig struct {
	SigningMethod string
	SecretKey     string
	Issuer        string
	Audience      []string
}

// JWTValidator validates bearer tokens issued by the identity provider
type JWTValidator struct {
	config JWTConfig
	method jwt.SigningMethod
}

// NewJWTValidator creates a validator for the configured signing method
func NewJWTValidator(config JWTConfig) (*JWTValidator, error) {
	if config.SecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}

	method := jwt.GetSigningMethod(config.SigningMethod)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing method: %s", config.SigningMethod)
	}

	return &JWTValidator{config: config, method: method}, nil
}

// ValidateToken parses and verifies a token, returning its claims
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.config.SigningMethod}),
	}
	if v.config.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.config.Issuer))
	}
	for _, aud := range v.config.Audience {
		parserOpts = append(parserOpts, jwt.WithAudience(aud))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(v.config.SecretKey), nil
	}, parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrInvalidToken
		}
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Email == "" {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		// Fall back to the registered subject for providers that only set sub
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// JWTGeneratorConfig configures token generation
type JWTGeneratorConfig struct {
	SigningMethod string
	SecretKey     string
	Issuer        string
	Audience      []string
	ExpiryTime    time.Duration
}

// JWTGenerator issues tokens. Used only by the refresh endpoint and tests;
// primary token issuance is the identity provider's job.
type JWTGenerator struct {
	config JWTGeneratorConfig
	method jwt.SigningMethod
}

// NewJWTGenerator creates a token generator
func NewJWTGenerator(config JWTGeneratorConfig) (*JWTGenerator, error) {
	if config.SecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}

	method := jwt.GetSigningMethod(config.SigningMethod)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing method: %s", config.SigningMethod)
	}

	return &JWTGenerator{config: config, method: method}, nil
}

// GenerateToken creates a signed token for the given identity
func (g *JWTGenerator) GenerateToken(userID, email string, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    g.config.Issuer,
			Audience:  jwt.ClaimStrings(g.config.Audience),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.config.ExpiryTime)),
		},
	}

	token := jwt.NewWithClaims(g.method, claims)
	return token.SignedString([]byte(g.config.SecretKey))
}
