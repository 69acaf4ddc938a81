package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/piazza-service/internal/domain"
	"github.com/tazhibayda/piazza-service/internal/log"
	"go.uber.org/zap"
)

type errResp struct {
	Error string `json:"error"`
}

// statusOf maps a domain failure to its HTTP status. Anything unclassified
// is a 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthRejected):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrExpired):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// reason strips the sentinel prefix ("validation failed: ") from a wrapped
// domain error so clients see only the detail.
func reason(err error, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusOf(err)
	var msg string
	switch status {
	case http.StatusBadRequest:
		msg = reason(err, domain.ErrValidation)
	case http.StatusUnauthorized:
		msg = reason(err, domain.ErrAuthRejected)
	case http.StatusForbidden:
		msg = domain.ErrExpired.Error()
	case http.StatusNotFound:
		msg = reason(err, domain.ErrNotFound)
		if msg != domain.ErrNotFound.Error() {
			msg += " not found"
		}
	case http.StatusConflict:
		msg = reason(err, domain.ErrConflict)
	default:
		log.WithDD(c.Request.Context(), h.Log).Error("request failed",
			zap.String("route", c.FullPath()), zap.Error(err))
		msg = domain.ErrStorage.Error()
	}
	c.AbortWithStatusJSON(status, errResp{Error: msg})
}
