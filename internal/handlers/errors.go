package handlers

import (
	"errors"
	"net/http"

	"cadr/internal/decay"
	"cadr/internal/repository"
	"cadr/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errInvalidBodyPref = "invalid body: "
	errInternal        = "internal error"
)

// statusFor maps service and engine errors to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrChamberBusy), errors.Is(err, service.ErrChamberIdle):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidParams), errors.Is(err, decay.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, decay.ErrWindowNotFound),
		errors.Is(err, decay.ErrInsufficientData),
		errors.Is(err, decay.ErrFitDivergence),
		errors.Is(err, decay.ErrInsufficientTrials):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with the status statusFor picks. Server errors are logged
// and their message hidden from the client.
func (h *Handler) fail(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code := statusFor(err)
	if code < http.StatusInternalServerError {
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}
	if h.log != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(code, gin.H{"error": errInternal})
}

// bindJSON binds the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled.
func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}
