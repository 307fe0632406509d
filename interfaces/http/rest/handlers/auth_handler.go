package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"snapboard-backend/pkg/auth"
	"snapboard-backend/pkg/common"
	pkgerrors "snapboard-backend/pkg/errors"
)

// AuthHandler serves token lifecycle endpoints. The identity provider
// issues the initial token; this handler only re-signs a fresh one for
// an already authenticated caller.
type AuthHandler struct {
	generator    *auth.JWTGenerator
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	generator *auth.JWTGenerator,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		generator:    generator,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	token, err := h.generator.GenerateToken(userCtx.UserID, userCtx.Email, userCtx.Roles)
	if err != nil {
		h.logger.Error("failed to generate refreshed token",
			zap.String("userId", userCtx.UserID),
			zap.Error(err))
		h.errorHandler.Handle(w, r, pkgerrors.NewInternalError("failed to refresh token"))
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token":     token,
		"tokenType": "Bearer",
		"expiresIn": int(time.Hour.Seconds()),
	})
}
