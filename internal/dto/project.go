package dto

import (
	"time"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// ProjectDTO represents a project in API responses. Progress is recomputed
// from the project's current tasks on every conversion.
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     uint64    `json:"owner_id"`
	Progress    int       `json:"progress"`
	TaskCount   int       `json:"task_count"`
	CreatedAt   time.Time `json:"created_at"`
	Owner       *UserDTO  `json:"owner,omitempty"`
}

// ProjectDetailDTO represents a project together with its task list.
type ProjectDetailDTO struct {
	ProjectDTO
	Tasks []TaskDTO `json:"tasks"`
}

// ToProjectDTO converts a Project model (with tasks preloaded) to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		Progress:    project.Progress(),
		TaskCount:   len(project.Tasks),
		CreatedAt:   project.CreatedAt,
	}

	// Include owner if preloaded
	if project.Owner.ID != 0 {
		owner := ToUserDTO(project.Owner)
		dto.Owner = &owner
	}

	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}

// ToProjectDetailDTO converts a project and its tasks to a detailed DTO
func ToProjectDetailDTO(project models.Project, tasks []models.Task) ProjectDetailDTO {
	taskDTOs := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		taskDTOs[i] = ToTaskDTO(task)
	}

	return ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project),
		Tasks:      taskDTOs,
	}
}
