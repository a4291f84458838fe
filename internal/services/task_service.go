package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-tracker-api/internal/authz"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title too long")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrTaskNotFound    = errors.New("task not found")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// AddTaskInput represents input for creating a task.
type AddTaskInput struct {
	Title       string
	DueDate     *time.Time
	Priority    models.TaskPriority
	Description string
}

// AddTask creates a pending task under a project the principal owns.
func (s *TaskService) AddTask(principal *models.User, projectID uint64, input AddTaskInput) (*models.Task, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !authz.Authorize(principal, authz.ActionAddTask, authz.Target{Project: project}).Permitted() {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) > constants.MaxTitleLength {
		return nil, ErrTitleTooLong
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	description := strings.TrimSpace(input.Description)
	if len(description) > constants.MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	task := &models.Task{
		Title:     title,
		DueDate:   input.DueDate,
		Priority:  priority,
		Status:    models.TaskStatusPending,
		ProjectID: project.ID,
	}
	if description != "" {
		task.Description = &description
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// CompleteTask transitions a task to completed. Completing an already
// completed task is a no-op, not an error.
func (s *TaskService) CompleteTask(principal *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Project")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !authz.Authorize(principal, authz.ActionCompleteTask, authz.Target{Project: &task.Project}).Permitted() {
		return nil, ErrForbidden
	}

	if task.Status == models.TaskStatusCompleted {
		return task, nil
	}

	task.Status = models.TaskStatusCompleted
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return task, nil
}

// ListTasks returns the tasks of a project the principal may view.
func (s *TaskService) ListTasks(principal *models.User, projectID uint64) ([]models.Task, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if !authz.Authorize(principal, authz.ActionViewProject, authz.Target{Project: project}).Permitted() {
		return nil, ErrForbidden
	}

	tasks, err := s.taskRepo.ListByProject(project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
