package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appsocial "snapboard-backend/application/social"
	"snapboard-backend/pkg/auth"
	"snapboard-backend/pkg/common"
	pkgerrors "snapboard-backend/pkg/errors"
)

// AccountHandler serves profiles, follower/following listings, and search
type AccountHandler struct {
	identity     *appsocial.IdentityResolver
	accounts     *appsocial.AccountService
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(
	identity *appsocial.IdentityResolver,
	accounts *appsocial.AccountService,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *AccountHandler {
	return &AccountHandler{
		identity:     identity,
		accounts:     accounts,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// GetMe handles GET /me, resolving the caller's own account
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
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

	common.RespondJSON(w, http.StatusOK, appsocial.AccountRef{
		ID:    account.ID(),
		Email: account.Email(),
	})
}

// GetProfile handles GET /accounts/{accountID}
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "accountID")

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	viewer, err := h.identity.Resolve(r.Context(), userCtx.Email)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	view, err := h.accounts.Profile(r.Context(), viewer.ID(), profileID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toProfileResponse(view))
}

// GetFollowers handles GET /accounts/{accountID}/followers
func (h *AccountHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "accountID")

	refs, err := h.accounts.Followers(r.Context(), profileID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"accounts": refs})
}

// GetFollowing handles GET /accounts/{accountID}/following
func (h *AccountHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "accountID")

	refs, err := h.accounts.Following(r.Context(), profileID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"accounts": refs})
}

// Search handles GET /search?q=
func (h *AccountHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	refs, err := h.accounts.Search(r.Context(), query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"accounts": refs})
}
