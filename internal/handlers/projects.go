package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
	taskService    *services.TaskService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, taskService *services.TaskService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		taskService:    taskService,
	}
}

// CreateProject creates a new project. Non-admins can only assign it to
// themselves.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	principal, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Name        string `json:"name" binding:"required,max=150"`
		Description string `json:"description" binding:"max=500"`
		AssigneeID  uint64 `json:"assignee_id"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	project, err := h.projectService.CreateProject(principal, services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// GetProjectTasks returns a project with its task list and progress.
// The project was loaded and authorized by RequireProjectAccess.
func (h *ProjectHandler) GetProjectTasks(c *gin.Context) {
	principal, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	project, exists := middleware.GetProject(c)
	if !exists {
		apierrors.InternalError(c, "Project not loaded")
		return
	}

	tasks, err := h.taskService.ListTasks(principal, project.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*project, tasks))
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNameRequired),
		errors.Is(err, services.ErrProjectNameTooLong),
		errors.Is(err, services.ErrDescriptionTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
