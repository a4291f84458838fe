package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// AddTask creates a pending task under the project from the URL.
func (h *TaskHandler) AddTask(c *gin.Context) {
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

	type AddTaskRequest struct {
		Title       string              `json:"title" binding:"required,max=150"`
		DueDate     *time.Time          `json:"due_date"`
		Priority    models.TaskPriority `json:"priority" binding:"omitempty,oneof=Low Medium High"`
		Description string              `json:"description" binding:"max=500"`
	}

	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	task, err := h.taskService.AddTask(principal, project.ID, services.AddTaskInput{
		Title:       req.Title,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Description: req.Description,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// CompleteTask marks the task from the URL as completed. Re-completing an
// already completed task succeeds without change.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	principal, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	task, exists := middleware.GetTask(c)
	if !exists {
		apierrors.InternalError(c, "Task not loaded")
		return
	}

	updated, err := h.taskService.CompleteTask(principal, task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrDescriptionTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
