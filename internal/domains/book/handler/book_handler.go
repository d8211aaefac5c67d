package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/domains/comment"
	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/internal/shared/response"
)

// BookHandler exposes the book catalog over HTTP. Stateless, delegates to
// the service layer.
type BookHandler struct {
	service  book.Service
	comments comment.Service
}

func NewBookHandler(service book.Service, comments comment.Service) *BookHandler {
	return &BookHandler{service: service, comments: comments}
}

// ========================================
// CATALOG ENDPOINTS
// ========================================

// List handles GET /books
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, books)
}

// ListByUser handles GET /users/:username/books
func (h *BookHandler) ListByUser(c *gin.Context) {
	books, err := h.service.ListByUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, books)
}

// Get handles GET /books/:id
func (h *BookHandler) Get(c *gin.Context) {
	b, err := h.service.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Create handles POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var req book.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/books/"+created.ID)
	response.Success(c, http.StatusCreated, created)
}

// Update handles PUT /books/:id
func (h *BookHandler) Update(c *gin.Context) {
	var req book.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.UpdateBook(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /books/:id. Comments on the book are removed as a
// follow-up step inside the service.
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// View handles GET /books/:id/view, bumping the counter atomically and
// returning the post-increment record.
func (h *BookHandler) View(c *gin.Context) {
	b, err := h.service.ViewBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// ListComments handles GET /books/:id/comments
func (h *BookHandler) ListComments(c *gin.Context) {
	opts := parseListOptions(c)
	comments, err := h.comments.ListByBook(c.Request.Context(), c.Param("id"), opts)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, comments, &response.Meta{
		Limit: opts.Limit,
		Skip:  opts.Skip,
		Count: len(comments),
	})
}

// ========================================
// ERROR MAPPING
// ========================================

func (h *BookHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, book.ErrBookNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, database.ErrInvalidID):
		response.BadRequest(c, err.Error())
	case isValidationError(err):
		response.BadRequest(c, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}
