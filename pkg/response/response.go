package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
)

// Message is the error body returned by every endpoint.
type Message struct {
	Message string `json:"message"`
}

// Success writes data with 200 OK.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes data with 201 Created.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Message{Message: message})
}

// Unauthorized writes a 401 with the given message.
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Message{Message: message})
}

// Status writes an arbitrary status with a message body.
func Status(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Message{Message: message})
}

// Error maps err to a status code and writes it.
func Error(c *gin.Context, err error) {
	status, message := StatusFor(err)
	c.AbortWithStatusJSON(status, Message{Message: message})
}

// StatusFor returns the HTTP status and client-facing message for err.
func StatusFor(err error) (int, string) {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound, err.Error()
	case domain.KindValidation:
		return http.StatusBadRequest, err.Error()
	case domain.KindConflict:
		return http.StatusConflict, err.Error()
	case domain.KindForbidden:
		return http.StatusForbidden, err.Error()
	case domain.KindUpstream:
		// cause is logged by the service, not leaked to clients
		var de *domain.DomainError
		errors.As(err, &de)
		return http.StatusInternalServerError, de.Message
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
