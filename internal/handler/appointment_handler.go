package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-day-scheduler/internal/service/appointment"
)

type AppointmentHandler struct {
	appointmentService *appointment.Service
}

func NewAppointmentHandler(appointmentService *appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (h *AppointmentHandler) HandleImport(c *gin.Context) {
	result, err := h.appointmentService.Import(c.Request.Context(), c.Param("day"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
