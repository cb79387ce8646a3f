package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/application"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/auth"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/middleware"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/response"
)

// ProfileHandler handles HTTP requests for the caller's profile.
type ProfileHandler struct {
	service *application.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *application.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// RegisterRoutes registers the profile routes.
func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	profile := r.Group("/api/v1/profile")
	profile.Use(middleware.AuthMiddleware(jwtManager))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpsertProfile)
	}
}

// GetProfile returns the caller's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpsertProfile creates or partially updates the caller's profile.
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpsertProfile(c.Request.Context(), userID, middleware.GetEmail(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
