package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-backend/internal/domains/comment"
	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/internal/shared/response"
)

// CommentHandler exposes comment creation and deletion. Listing lives on
// the book and profile routes.
type CommentHandler struct {
	service comment.Service
}

func NewCommentHandler(service comment.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create handles POST /comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req comment.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.CreateComment(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Get handles GET /comments/:id
func (h *CommentHandler) Get(c *gin.Context) {
	cm, err := h.service.GetComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cm)
}

// Delete handles DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteComment(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *CommentHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.Is(err, comment.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, database.ErrInvalidID), errors.As(err, &verrs):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}
