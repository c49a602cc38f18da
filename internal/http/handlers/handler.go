package handlers

import (
	"errors"
	"net/http"

	"dulpton/internal/logger"
	"dulpton/internal/service"
	"dulpton/internal/storage"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Services *service.Services
}

func NewHandler(svc *service.Services) *Handler {
	return &Handler{Services: svc}
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// respondError maps ledger errors to HTTP statuses. Anything unmapped is a 500
// with the detail kept out of the response body.
func respondError(c *gin.Context, err error) {
	var belowMin *service.BelowMinimumError
	var lockActive *service.LockPeriodActiveError

	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOperationNotActive),
		errors.Is(err, service.ErrNoReward),
		errors.Is(err, service.ErrPoolInactive),
		errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrAlreadyClaimed),
		errors.As(err, &belowMin),
		errors.As(err, &lockActive):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
