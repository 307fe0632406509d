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

// BoardHandler handles board lifecycle requests
type BoardHandler struct {
	identity     *apptaskboard.IdentityResolver
	boards       *apptaskboard.BoardService
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(
	identity *apptaskboard.IdentityResolver,
	boards *apptaskboard.BoardService,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *BoardHandler {
	return &BoardHandler{
		identity:     identity,
		boards:       boards,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// CreateBoardRequest is the request body for creating a board
type CreateBoardRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

// RenameBoardRequest is the request body for renaming a board
type RenameBoardRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

// CreateBoard handles POST /boards
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req CreateBoardRequest
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

	board, err := h.boards.CreateBoard(r.Context(), caller.ID(), req.Title)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, toBoardSummary(board))
}

// ListBoards handles GET /boards, returning created and invited boards
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	caller, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	boards, err := h.boards.BoardsFor(r.Context(), caller.ID())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"boards": toBoardSummaries(boards),
	})
}

// GetBoard handles GET /boards/{boardID}
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	caller, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	view, err := h.boards.ViewBoard(r.Context(), caller.ID(), boardID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toBoardDetail(view))
}

// RenameBoard handles PUT /boards/{boardID}
func (h *BoardHandler) RenameBoard(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	var req RenameBoardRequest
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

	board, err := h.boards.RenameBoard(r.Context(), caller.ID(), boardID, req.Title)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toBoardSummary(board))
}

// DeleteBoard handles DELETE /boards/{boardID}
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "boardID")

	caller, err := h.resolveCaller(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.boards.DeleteBoard(r.Context(), caller.ID(), boardID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": true,
		"boardId": boardID,
	})
}

func (h *BoardHandler) resolveCaller(r *http.Request) (*taskboard.User, error) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		return nil, err
	}
	return h.identity.Resolve(r.Context(), userCtx.Email)
}
