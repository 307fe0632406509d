//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"snapboard-backend/application/social"
	"snapboard-backend/application/taskboard"
	"snapboard-backend/infrastructure/config"
	"snapboard-backend/interfaces/http/rest"
	"snapboard-backend/interfaces/http/rest/handlers"
)

// baseSet covers the infrastructure shared by both applications
var baseSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideErrorHandler,
	ProvideUnitOfWorkFactory,
	ProvideJWTGenerator,
	handlers.NewAuthHandler,
)

// socialSet wires the photo-sharing application
var socialSet = wire.NewSet(
	baseSet,
	ProvideAccountRepository,
	ProvidePostRepository,
	social.NewIdentityResolver,
	social.NewRelationshipService,
	social.NewFeedService,
	social.NewPostService,
	social.NewAccountService,
	handlers.NewFeedHandler,
	handlers.NewPostHandler,
	handlers.NewAccountHandler,
	handlers.NewRelationshipHandler,
	rest.NewSocialRouter,
	wire.Struct(new(SocialContainer), "*"),
)

// taskboardSet wires the taskboard application
var taskboardSet = wire.NewSet(
	baseSet,
	ProvideUserRepository,
	ProvideBoardRepository,
	ProvideMembershipRepository,
	ProvideTaskRepository,
	taskboard.NewIdentityResolver,
	taskboard.NewBoardService,
	taskboard.NewMembershipService,
	taskboard.NewTaskService,
	handlers.NewBoardHandler,
	handlers.NewMembershipHandler,
	handlers.NewTaskHandler,
	rest.NewTaskboardRouter,
	wire.Struct(new(TaskboardContainer), "*"),
)

// InitializeSocialContainer creates a fully wired social application
func InitializeSocialContainer(ctx context.Context, cfg *config.Config) (*SocialContainer, error) {
	wire.Build(socialSet)
	return nil, nil // Wire will replace this
}

// InitializeTaskboardContainer creates a fully wired taskboard application
func InitializeTaskboardContainer(ctx context.Context, cfg *config.Config) (*TaskboardContainer, error) {
	wire.Build(taskboardSet)
	return nil, nil // Wire will replace this
}
