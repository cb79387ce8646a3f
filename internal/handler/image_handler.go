package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/application"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/imagesearch"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/response"
)

// ImageHandler handles HTTP requests for breed image search.
type ImageHandler struct {
	service *application.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(service *application.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// RegisterRoutes registers the image search route.
func (h *ImageHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/v1/search-images", h.SearchImages)
}

// SearchImages proxies an image search for ?breed=NAME&page=P.
func (h *ImageHandler) SearchImages(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		response.BadRequest(c, "page must be a positive integer")
		return
	}

	result, err := h.service.SearchImages(c.Request.Context(), c.Query("breed"), page)
	if err != nil {
		writeImageSearchError(c, err)
		return
	}

	response.Success(c, result)
}

func writeImageSearchError(c *gin.Context, err error) {
	var statusErr *imagesearch.StatusError
	switch {
	case domain.KindOf(err) != "":
		response.Error(c, err)
	case errors.Is(err, imagesearch.ErrNotConfigured):
		response.Status(c, http.StatusInternalServerError, imagesearch.ErrNotConfigured.Error())
	case errors.Is(err, imagesearch.ErrInvalidResponse):
		response.Status(c, http.StatusInternalServerError, imagesearch.ErrInvalidResponse.Error())
	case errors.As(err, &statusErr):
		msg := statusErr.Message
		if msg == "" {
			msg = http.StatusText(statusErr.StatusCode)
		}
		response.Status(c, statusErr.StatusCode, msg)
	default:
		response.Status(c, http.StatusInternalServerError, "failed to fetch images")
	}
}
