package handlers

import (
	"errors"
	"net/http"

	"cryosure/internal/client"
	"cryosure/internal/dashboard"
	"cryosure/internal/service"
	"cryosure/internal/validator"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errInvalidBodyPref = "invalid body: "
	errTooManyRequests = "too many requests"
	errInternal        = "internal error"
	errNoFields        = "no fields given"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		se *client.SubmissionError
		fe *client.FetchError
	)
	switch {
	case errors.Is(err, validator.ErrInvalidField):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dashboard.ErrUnknownField),
		errors.Is(err, dashboard.ErrUnknownPreset),
		errors.Is(err, dashboard.ErrUnknownView):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrStepIncomplete),
		errors.Is(err, dashboard.ErrNotAtReview),
		errors.Is(err, dashboard.ErrSubmitInProgress):
		return http.StatusConflict
	case errors.Is(err, service.ErrNoActiveConfig):
		return http.StatusNotFound
	case errors.Is(err, client.ErrConfiguration):
		return http.StatusServiceUnavailable
	case errors.As(err, &se), errors.As(err, &fe):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// messageFor is the user-facing text for err.
func messageFor(err error) string {
	var (
		se *client.SubmissionError
		fe *client.FetchError
	)
	if errors.Is(err, client.ErrConfiguration) || errors.As(err, &se) || errors.As(err, &fe) {
		return client.Describe(err)
	}
	if statusFor(err) == http.StatusInternalServerError {
		return errInternal
	}
	return err.Error()
}

// respondState writes the view model, or the error alongside it.
func (h *Handler) respondState(c *gin.Context, st dashboard.State, err error, logKey string) {
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"status": statusOK, "state": st})
		return
	}
	code := statusFor(err)
	if h.log != nil {
		if code >= http.StatusInternalServerError {
			h.log.Errorw(logKey, "err", err)
		} else {
			h.log.Debugw(logKey, "err", err)
		}
	}
	body := gin.H{"error": messageFor(err), "state": st}
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		body["validationErrors"] = ve.Fields
	}
	c.JSON(code, body)
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}
