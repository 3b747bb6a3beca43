package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: code, Message: message})
}

// respondServiceError maps service errors to HTTP status codes. Unknown errors are
// logged and answered without their text.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDay),
		errors.Is(err, domain.ErrInvalidClock),
		errors.Is(err, domain.ErrInvalidTask),
		errors.Is(err, domain.ErrInvalidSettings),
		errors.Is(err, domain.ErrInvalidProject):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrSettingsNotFound),
		errors.Is(err, domain.ErrProjectNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrSlotOccupied):
		respondError(c, http.StatusConflict, "slot_occupied", err.Error())
	case errors.Is(err, domain.ErrOverlappingFixedTasks):
		respondError(c, http.StatusConflict, "overlapping_fixed_tasks", err.Error())
	case errors.Is(err, domain.ErrCalendarImportDisabled):
		respondError(c, http.StatusServiceUnavailable, "feature_disabled", err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		slog.WarnContext(c.Request.Context(), "request validation failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return false
	}
	return true
}
