package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-backend/internal/domains/comment"
	"bookshelf-backend/internal/domains/profile"
	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/internal/shared/response"
	"bookshelf-backend/pkg/jwt"
)

// ProfileHandler exposes profile management and login over HTTP.
type ProfileHandler struct {
	service    profile.Service
	comments   comment.Service
	jwtManager *jwt.Manager
}

func NewProfileHandler(service profile.Service, comments comment.Service, jwtManager *jwt.Manager) *ProfileHandler {
	return &ProfileHandler{service: service, comments: comments, jwtManager: jwtManager}
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// List handles GET /profiles
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.service.ListProfiles(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profiles)
}

// Get handles GET /profiles/:username
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.service.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Create handles POST /profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.CreateProfile(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/profiles/"+created.Username)
	response.Success(c, http.StatusCreated, created)
}

// Update handles PUT /profiles/:username
func (h *ProfileHandler) Update(c *gin.Context) {
	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /profiles/:username
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteProfile(c.Request.Context(), c.Param("username")); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ListComments handles GET /users/:username/comments
func (h *ProfileHandler) ListComments(c *gin.Context) {
	opts := comment.OptionsFromQuery(c.Query("limit"), c.Query("skip"), c.Query("order"))
	comments, err := h.comments.ListByUser(c.Request.Context(), c.Param("username"), opts)
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
// AUTHENTICATION
// ========================================

// Login handles POST /auth/login. On success it issues an access token
// alongside the sanitized profile. Unknown username and wrong password are
// deliberately the same 401.
func (h *ProfileHandler) Login(c *gin.Context) {
	var req profile.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	p, err := h.service.Authenticate(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(p.ID, p.Username)
	if err != nil {
		response.InternalServerError(c, "internal server error")
		return
	}

	response.Success(c, http.StatusOK, profile.LoginResponse{
		AccessToken: token,
		Profile:     *p,
	})
}

// ========================================
// ERROR MAPPING
// ========================================

func (h *ProfileHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, profile.ErrUsernameTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, profile.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, profile.ErrInvalidUsername), errors.Is(err, database.ErrInvalidID), errors.As(err, &verrs):
		response.BadRequest(c, err.Error())
	default:
		// ErrCreateInconsistency lands here on purpose.
		response.InternalServerError(c, "internal server error")
	}
}
