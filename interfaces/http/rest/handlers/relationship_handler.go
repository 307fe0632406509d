package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appsocial "snapboard-backend/application/social"
	"snapboard-backend/domain/social"
	"snapboard-backend/pkg/auth"
	"snapboard-backend/pkg/common"
	pkgerrors "snapboard-backend/pkg/errors"
)

// RelationshipHandler exposes the follow and unfollow operations
type RelationshipHandler struct {
	identity      *appsocial.IdentityResolver
	relationships *appsocial.RelationshipService
	errorHandler  *pkgerrors.ErrorHandler
	logger        *zap.Logger
}

// NewRelationshipHandler creates a new relationship handler
func NewRelationshipHandler(
	identity *appsocial.IdentityResolver,
	relationships *appsocial.RelationshipService,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *RelationshipHandler {
	return &RelationshipHandler{
		identity:      identity,
		relationships: relationships,
		errorHandler:  errorHandler,
		logger:        logger,
	}
}

// Follow handles POST /accounts/{accountID}/follow
func (h *RelationshipHandler) Follow(w http.ResponseWriter, r *http.Request) {
	followeeID := chi.URLParam(r, "accountID")

	follower, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.relationships.Follow(r.Context(), follower.ID(), followeeID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"following": true,
		"accountId": followeeID,
	})
}

// Unfollow handles DELETE /accounts/{accountID}/follow
func (h *RelationshipHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	followeeID := chi.URLParam(r, "accountID")

	follower, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.relationships.Unfollow(r.Context(), follower.ID(), followeeID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"following": false,
		"accountId": followeeID,
	})
}

func (h *RelationshipHandler) resolveCaller(r *http.Request) (*social.Account, error) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		return nil, err
	}
	return h.identity.Resolve(r.Context(), userCtx.Email)
}
