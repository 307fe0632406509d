package handlers

import (
	"net/http"

	"go.uber.org/zap"

	appsocial "snapboard-backend/application/social"
	"snapboard-backend/pkg/auth"
	"snapboard-backend/pkg/common"
	pkgerrors "snapboard-backend/pkg/errors"
)

// FeedHandler serves the aggregated home feed
type FeedHandler struct {
	identity     *appsocial.IdentityResolver
	feed         *appsocial.FeedService
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(
	identity *appsocial.IdentityResolver,
	feed *appsocial.FeedService,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *FeedHandler {
	return &FeedHandler{
		identity:     identity,
		feed:         feed,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// GetFeed handles GET /feed
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	account, err := h.identity.Resolve(r.Context(), userCtx.Email)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	posts, err := h.feed.FeedFor(r.Context(), account.ID())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"accountId": account.ID(),
		"posts":     toPostViews(posts),
	})
}
