package di

import (
	"go.uber.org/zap"

	"snapboard-backend/infrastructure/config"
	"snapboard-backend/interfaces/http/rest"
)

// SocialContainer holds the wired photo-sharing application
type SocialContainer struct {
	Config *config.Config
	Logger *zap.Logger
	Router *rest.SocialRouter
}

// TaskboardContainer holds the wired taskboard application
type TaskboardContainer struct {
	Config *config.Config
	Logger *zap.Logger
	Router *rest.TaskboardRouter
}
