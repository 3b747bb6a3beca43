package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-day-scheduler/internal/service/schedule"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/task"
)

type TaskHandler struct {
	taskService     *task.Service
	scheduleService *schedule.Service
}

func NewTaskHandler(taskService *task.Service, scheduleService *schedule.Service) *TaskHandler {
	return &TaskHandler{
		taskService:     taskService,
		scheduleService: scheduleService,
	}
}

func (h *TaskHandler) HandleCreate(c *gin.Context) {
	var in task.CreateInput
	if !bindJSON(c, &in) {
		return
	}

	created, err := h.taskService.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *TaskHandler) HandleGet(c *gin.Context) {
	found, err := h.taskService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *TaskHandler) HandleDelete(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) HandleDuration(c *gin.Context) {
	minutes, err := h.scheduleService.TaskDuration(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task_id": c.Param("id"), "duration_minutes": minutes})
}

func (h *TaskHandler) HandleToggle(c *gin.Context) {
	updated, err := h.taskService.ToggleCompleted(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TaskHandler) HandleRecordPomodoro(c *gin.Context) {
	updated, err := h.taskService.RecordPomodoro(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TaskHandler) HandleInbox(c *gin.Context) {
	tasks, err := h.taskService.ListInbox(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}
