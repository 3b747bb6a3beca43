package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/settings"
)

type SettingsHandler struct {
	settingsService *settings.Service
}

func NewSettingsHandler(settingsService *settings.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) HandleGet(c *gin.Context) {
	current, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, current)
}

func (h *SettingsHandler) HandleUpdate(c *gin.Context) {
	var req domain.Settings
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.settingsService.Update(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
