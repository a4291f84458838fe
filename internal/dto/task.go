package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	DueDate     *time.Time          `json:"due_date"`
	Priority    models.TaskPriority `json:"priority"`
	Description *string             `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	ProjectID   uint64              `json:"project_id"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		DueDate:     task.DueDate,
		Priority:    task.Priority,
		Description: task.Description,
		Status:      task.Status,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
	}
}
