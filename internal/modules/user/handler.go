package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sportarea/internal/middleware"
	"sportarea/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", middleware.AdminOnly(), h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", middleware.AdminOnly(), h.UpdateUser)
		users.DELETE("/:id", middleware.AdminOnly(), h.DeleteUser)
	}
}

func actor(c *gin.Context) (int64, string) {
	return c.GetInt64("user_id"), c.GetString("role")
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return 0, false
	}
	return id, true
}

func respondUserErr(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user data")
	case ErrEmailTaken:
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email is already used by another user")
	case ErrPhoneTaken:
		response.Error(c, http.StatusConflict, "PHONE_EXISTS", "Phone number is already used by another user")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "User operation failed")
	}
}

func (h *Handler) ListUsers(c *gin.Context) {
	_, role := actor(c)
	users, err := h.service.ListUsers(c.Request.Context(), role)
	if err != nil {
		respondUserErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	actorID, role := actor(c)
	u, err := h.service.GetUser(c.Request.Context(), id, actorID, role)
	if err != nil {
		respondUserErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	_, role := actor(c)
	u, err := h.service.UpdateUser(c.Request.Context(), id, role, req)
	if err != nil {
		respondUserErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	_, role := actor(c)
	if err := h.service.DeleteUser(c.Request.Context(), id, role); err != nil {
		respondUserErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
