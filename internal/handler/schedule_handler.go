package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-day-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/schedule"
	"github.com/KasumiMercury/primind-day-scheduler/internal/service/task"
)

const runIDHeader = "X-Run-ID"

type recalculateRequest struct {
	OrderedTaskIDs []string `json:"ordered_task_ids" binding:"required"`
	StartingTaskID string   `json:"starting_task_id"`
}

type startTimeRequest struct {
	StartTime string `json:"start_time" binding:"required"`
}

type ScheduleHandler struct {
	scheduleService *schedule.Service
	taskService     *task.Service
}

func NewScheduleHandler(scheduleService *schedule.Service, taskService *task.Service) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		taskService:     taskService,
	}
}

func (h *ScheduleHandler) HandleRecalculate(c *gin.Context) {
	var req recalculateRequest
	if !bindJSON(c, &req) {
		return
	}

	runID := c.GetHeader(runIDHeader)
	if runID == "" {
		runID = uuid.NewString()
	}

	result, err := h.scheduleService.Recalculate(c.Request.Context(), schedule.RecalculateRequest{
		Day:            c.Param("day"),
		OrderedTaskIDs: req.OrderedTaskIDs,
		StartingTaskID: req.StartingTaskID,
		RunID:          runID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ScheduleHandler) HandleSlotCheck(c *gin.Context) {
	proposed, ok := bindStartTime(c)
	if !ok {
		return
	}

	check, err := h.scheduleService.CheckSlot(c.Request.Context(), c.Param("day"), c.Param("id"), proposed)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, check)
}

func (h *ScheduleHandler) HandleMoveTask(c *gin.Context) {
	proposed, ok := bindStartTime(c)
	if !ok {
		return
	}

	moved, err := h.scheduleService.MoveTask(c.Request.Context(), c.Param("day"), c.Param("id"), proposed)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, moved)
}

func (h *ScheduleHandler) HandleListDay(c *gin.Context) {
	tasks, err := h.taskService.ListDay(c.Request.Context(), c.Param("day"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": c.Param("day"), "tasks": tasks})
}

func bindStartTime(c *gin.Context) (domain.Clock, bool) {
	var req startTimeRequest
	if !bindJSON(c, &req) {
		return 0, false
	}

	proposed, err := domain.ParseClock(req.StartTime)
	if err != nil {
		respondServiceError(c, err)
		return 0, false
	}
	return proposed, true
}
