package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pranauww/gym-startup/internal/db"
	"github.com/pranauww/gym-startup/internal/storage"
)

// errorResponse is the envelope for every failure: a stable machine
// code plus a human-readable message.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Machine-checkable error codes
const (
	codeNotFound     = "not_found"
	codeConflict     = "conflict"
	codeInvalid      = "invalid_argument"
	codeUnauthorized = "unauthorized"
	codeUnavailable  = "unavailable"
	codeInternal     = "internal"
)

// respondError maps a store/collaborator error to an HTTP response.
// Unclassified errors are logged and surfaced as an opaque internal
// error so diagnostic detail never leaks to the caller.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, code := classify(err)
	if code == codeInternal {
		logger.Error("request failed", zap.Error(err))
		c.JSON(status, errorResponse{Error: code, Message: "internal error"})
		return
	}
	if code == codeUnavailable {
		c.JSON(status, errorResponse{Error: code, Message: "temporarily unavailable, retry later"})
		return
	}
	c.JSON(status, errorResponse{Error: code, Message: err.Error()})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, db.ErrConflict):
		return http.StatusConflict, codeConflict
	case errors.Is(err, db.ErrInvalidArgument),
		errors.Is(err, storage.ErrUnsupportedType),
		errors.Is(err, storage.ErrTooLarge):
		return http.StatusBadRequest, codeInvalid
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, codeUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

// respondInvalid reports a request that failed binding/validation.
func respondInvalid(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: codeInvalid, Message: message})
}

// respondUnauthorized reports a request with no resolved identity.
func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, errorResponse{Error: codeUnauthorized, Message: "authentication required"})
}
