package di

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"snapboard-backend/application/ports"
	"snapboard-backend/infrastructure/config"
	"snapboard-backend/infrastructure/persistence/dynamodb"
	"snapboard-backend/pkg/auth"
	pkgerrors "snapboard-backend/pkg/errors"
)

// ProvideLogger creates a new logger instance at the configured level
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		zapCfg.Level = level
	}

	return zapCfg.Build()
}

// ProvideJWTGenerator creates the token generator backing the refresh
// endpoint. It signs with the same secret the middleware validates
// against, including the development fallback.
func ProvideJWTGenerator(cfg *config.Config) (*auth.JWTGenerator, error) {
	genCfg := auth.JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		ExpiryTime:    time.Hour,
	}
	if cfg.JWTAudience != "" {
		genCfg.Audience = []string{cfg.JWTAudience}
	}
	if genCfg.SecretKey == "" && !cfg.IsProduction() {
		genCfg.SecretKey = auth.DevelopmentSecret
	}
	return auth.NewJWTGenerator(genCfg)
}

// ProvideAWSConfig creates AWS configuration. A configured endpoint URL
// points the SDK at DynamoDB Local for development.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}
	})
}

// ProvideErrorHandler creates the shared HTTP error handler
func ProvideErrorHandler(logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger)
}

// ProvideUnitOfWorkFactory creates the transaction factory
func ProvideUnitOfWorkFactory(client *awsdynamodb.Client) ports.UnitOfWorkFactory {
	return dynamodb.NewUnitOfWorkFactory(client)
}

// ProvideAccountRepository creates an account repository
func ProvideAccountRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.AccountRepository {
	return dynamodb.NewAccountRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvidePostRepository creates a post repository
func ProvidePostRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.PostRepository {
	return dynamodb.NewPostRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideUserRepository creates a taskboard user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideBoardRepository creates a board repository
func ProvideBoardRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.BoardRepository {
	return dynamodb.NewBoardRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideMembershipRepository creates a membership repository
func ProvideMembershipRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.MembershipRepository {
	return dynamodb.NewMembershipRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideTaskRepository creates a task repository
func ProvideTaskRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.TaskRepository {
	return dynamodb.NewTaskRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}
