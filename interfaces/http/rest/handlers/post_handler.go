package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	appsocial "snapboard-backend/application/social"
	"snapboard-backend/pkg/auth"
	"snapboard-backend/pkg/common"
	pkgerrors "snapboard-backend/pkg/errors"
	"snapboard-backend/pkg/utils"
)

// PostHandler handles post creation, retrieval, and commenting
type PostHandler struct {
	identity     *appsocial.IdentityResolver
	posts        *appsocial.PostService
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(
	identity *appsocial.IdentityResolver,
	posts *appsocial.PostService,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *PostHandler {
	return &PostHandler{
		identity:     identity,
		posts:        posts,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// CreatePostRequest is the request body for creating a post
type CreatePostRequest struct {
	ImageRef string `json:"imageRef" validate:"required,max=512"`
	Caption  string `json:"caption" validate:"max=1000"`
}

// AddCommentRequest is the request body for commenting on a post
type AddCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

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

	post, err := h.posts.CreatePost(r.Context(), account.ID(), req.ImageRef, req.Caption)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, toPostView(post))
}

// GetPost handles GET /posts/{postID}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	post, err := h.posts.GetPost(r.Context(), postID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toPostView(post))
}

// AddComment handles POST /posts/{postID}/comments
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	var req AddCommentRequest
	if err := common.ParseJSONBody(r, &req, maxRequestBody); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

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

	comment, err := h.posts.AddComment(r.Context(), account.ID(), postID, req.Text)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CommentView{
		AuthorID:  comment.AuthorID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	})
}
