package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/application"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/response"
)

// Response headers describing how complete a catalog listing is.
const (
	HeaderCatalogComplete     = "X-Catalog-Complete"
	HeaderCatalogSkippedPages = "X-Catalog-Skipped-Pages"
)

// BreedHandler handles HTTP requests for the breed catalog.
type BreedHandler struct {
	service *application.BreedService
}

// NewBreedHandler creates a new BreedHandler.
func NewBreedHandler(service *application.BreedService) *BreedHandler {
	return &BreedHandler{service: service}
}

// RegisterRoutes registers the public breed routes.
func (h *BreedHandler) RegisterRoutes(r *gin.RouterGroup) {
	breeds := r.Group("/api/v1/breeds")
	{
		breeds.GET("", h.ListBreeds)
		breeds.GET("/:id", h.GetBreed)
	}
}

// ListBreeds returns the whole catalog as a JSON array. Completeness is
// reported in response headers so the body stays a plain list.
func (h *BreedHandler) ListBreeds(c *gin.Context) {
	pageSize := 0
	if raw := c.Query("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.BadRequest(c, "page_size must be a positive integer")
			return
		}
		pageSize = n
	}

	result, err := h.service.ListBreeds(c.Request.Context(), pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	skipped := make([]string, len(result.SkippedPages))
	for i, p := range result.SkippedPages {
		skipped[i] = strconv.Itoa(p)
	}
	c.Header(HeaderCatalogComplete, strconv.FormatBool(result.Complete))
	c.Header(HeaderCatalogSkippedPages, strings.Join(skipped, ","))

	response.Success(c, result.Breeds)
}

// GetBreed returns a single breed by its source identifier.
func (h *BreedHandler) GetBreed(c *gin.Context) {
	result, err := h.service.GetBreed(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
