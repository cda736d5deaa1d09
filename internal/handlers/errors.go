package handlers

import (
	"errors"
	"net/http"

	"alpr_gateway/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errInvalidBodyPref = "invalid body: "
	errInvalidID       = "invalid id"
	errInternal        = "internal error"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError maps service errors to HTTP codes: validation → 400,
// missing rows → 404, everything else → 500 with a generic message.
func (h *Handler) respondServiceError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrInvalidTime),
		errors.Is(err, service.ErrEmptyPlate),
		errors.Is(err, service.ErrCarNumberRequired),
		errors.Is(err, service.ErrPointNameRequired),
		errors.Is(err, service.ErrInvalidSettings):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPersonNotFound),
		errors.Is(err, service.ErrPointNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, logKey, err, kv...)
	}
}
