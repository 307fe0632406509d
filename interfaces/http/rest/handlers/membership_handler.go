package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apptaskboard "snapboard-backend/application/taskboard"
	"snapboard-backend/domain/taskboard"
	"snapboard-backend/pkg/auth"
	"snapboard-backend/pkg/common"
	pkgerrors "snapboard-backend/pkg/errors"
	"snapboard-backend/pkg/utils"
)

// MembershipHandler handles board membership requests
type MembershipHandler struct {
	identity     *apptaskboard.IdentityResolver
	memberships  *apptaskboard.MembershipService
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(
	identity *apptaskboard.IdentityResolver,
	memberships *apptaskboard.MembershipService,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *MembershipHandler {
	return &MembershipHandler{
		identity:     identity,
		memberships:  memberships,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// InviteRequest is the request body for inviting users to a board
type InviteRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,max=25,dive,required"`
}

// ListMembers handles GET /boards/{boardID}/members
func (h *MembershipHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	caller, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	members, err := h.memberships.Members(r.Context(), caller.ID(), boardID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"members": toUserViews(members),
	})
}

// ListInviteCandidates handles GET /boards/{boardID}/invite-candidates
func (h *MembershipHandler) ListInviteCandidates(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	caller, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	candidates, err := h.memberships.InviteCandidates(r.Context(), caller.ID(), boardID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"candidates": toUserViews(candidates),
	})
}

// Invite handles POST /boards/{boardID}/members
func (h *MembershipHandler) Invite(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	var req InviteRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	caller, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.memberships.Invite(r.Context(), caller.ID(), boardID, req.UserIDs); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"boardId": boardID,
		"invited": req.UserIDs,
	})
}

// Revoke handles DELETE /boards/{boardID}/members/{userID}
func (h *MembershipHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")
	userID := chi.URLParam(r, "userID")

	caller, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.memberships.Revoke(r.Context(), caller.ID(), boardID, userID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"boardId": boardID,
		"revoked": userID,
	})
}

func (h *MembershipHandler) resolveCaller(r *http.Request) (*taskboard.User, error) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		return nil, err
	}
	return h.identity.Resolve(r.Context(), userCtx.Email)
}
