package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/application"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/auth"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/middleware"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/response"
)

// FavoriteHandler handles HTTP requests for a user's favorite breeds.
type FavoriteHandler struct {
	service *application.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service *application.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// RegisterRoutes registers all favorite routes.
func (h *FavoriteHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	favorites := r.Group("/api/v1/favorites")
	favorites.Use(middleware.AuthMiddleware(jwtManager))
	{
		favorites.POST("", h.AddFavorite)
		favorites.GET("", h.ListFavorites)
		favorites.GET("/:breed_id", h.GetFavorite)
		favorites.PUT("/:breed_id", h.UpdateFavorite)
		favorites.DELETE("/:breed_id", h.RemoveFavorite)
	}
}

// AddFavorite marks a breed as a favorite.
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddFavorite(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListFavorites returns the user's favorites. ?expand=breed attaches breed details.
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.ListFavorites(c.Request.Context(), userID, expandBreed(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetFavorite returns one favorite by breed id.
func (h *FavoriteHandler) GetFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.GetFavorite(c.Request.Context(), userID, c.Param("breed_id"), expandBreed(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateFavorite replaces the memo of a favorite.
func (h *FavoriteHandler) UpdateFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.UpdateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateMemo(c.Request.Context(), userID, c.Param("breed_id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RemoveFavorite deletes a favorite.
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), userID, c.Param("breed_id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func expandBreed(c *gin.Context) bool {
	return c.Query("expand") == "breed"
}
