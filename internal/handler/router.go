package handler

import "github.com/gin-gonic/gin"

type Handlers struct {
	Schedule    *ScheduleHandler
	Task        *TaskHandler
	Settings    *SettingsHandler
	Appointment *AppointmentHandler
	Project     *ProjectHandler
}

// RegisterRoutes mounts the v1 API on r.
func RegisterRoutes(r gin.IRouter, h Handlers) {
	v1 := r.Group("/api/v1")

	days := v1.Group("/days/:day")
	{
		days.POST("/recalculate", h.Schedule.HandleRecalculate)
		days.GET("/tasks", h.Schedule.HandleListDay)
		days.POST("/tasks/:id/slot-check", h.Schedule.HandleSlotCheck)
		days.PUT("/tasks/:id/start-time", h.Schedule.HandleMoveTask)
		days.POST("/appointments/import", h.Appointment.HandleImport)
	}

	tasks := v1.Group("/tasks")
	{
		tasks.POST("", h.Task.HandleCreate)
		tasks.GET("/:id", h.Task.HandleGet)
		tasks.DELETE("/:id", h.Task.HandleDelete)
		tasks.GET("/:id/duration", h.Task.HandleDuration)
		tasks.POST("/:id/toggle", h.Task.HandleToggle)
		tasks.POST("/:id/pomodoros", h.Task.HandleRecordPomodoro)
	}

	projects := v1.Group("/projects")
	{
		projects.POST("", h.Project.HandleCreate)
		projects.GET("", h.Project.HandleListActive)
		projects.GET("/:id", h.Project.HandleGet)
		projects.POST("/:id/archive", h.Project.HandleArchive)
		projects.GET("/:id/tasks", h.Project.HandleTasks)
		projects.GET("/:id/progress", h.Project.HandleProgress)
	}

	v1.GET("/inbox", h.Task.HandleInbox)
	v1.GET("/settings", h.Settings.HandleGet)
	v1.PUT("/settings", h.Settings.HandleUpdate)
}
