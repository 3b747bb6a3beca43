package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-day-scheduler/internal/service/project"
)

type ProjectHandler struct {
	projectService *project.Service
}

func NewProjectHandler(projectService *project.Service) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) HandleCreate(c *gin.Context) {
	var in project.CreateInput
	if !bindJSON(c, &in) {
		return
	}

	created, err := h.projectService.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ProjectHandler) HandleListActive(c *gin.Context) {
	projects, err := h.projectService.ListActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *ProjectHandler) HandleGet(c *gin.Context) {
	found, err := h.projectService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h *ProjectHandler) HandleArchive(c *gin.Context) {
	archived, err := h.projectService.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, archived)
}

func (h *ProjectHandler) HandleTasks(c *gin.Context) {
	tasks, err := h.projectService.Tasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project_id": c.Param("id"), "tasks": tasks})
}

func (h *ProjectHandler) HandleProgress(c *gin.Context) {
	progress, err := h.projectService.Progress(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
