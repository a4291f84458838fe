package repository

import (
	"errors"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

// Sentinel errors returned by the transactional identity checks.
var (
	ErrEmailExists    = errors.New("email already in use")
	ErrUsernameExists = errors.New("username already in use")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateUnique creates a new user, re-checking email and username
	// uniqueness inside the same transaction as the insert
	CreateUnique(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByLogin finds a user by email or username
	FindByLogin(login string) (*models.User, error)

	// List retrieves users ordered by username with pagination
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// Update updates a user
	Update(user *models.User) error

	// UpdateUnique saves a user, re-checking that no other user holds its
	// email or username inside the same transaction as the write
	UpdateUnique(user *models.User) error

	// ToggleRole flips a user's role inside one transaction and returns the
	// updated user
	ToggleRole(id uint64) (*models.User, error)

	// DeleteCascade removes a user together with their projects and those
	// projects' tasks in a single transaction
	DeleteCascade(id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListByOwner lists a user's projects with their tasks
	ListByOwner(ownerID uint64) ([]models.Project, error)

	// ListAll lists every project with its tasks
	ListAll() ([]models.Project, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// ListByProject lists the tasks of a project
	ListByProject(projectID uint64) ([]models.Task, error)
}

// Stats holds system-wide entity counts for the admin dashboard.
type Stats struct {
	TotalUsers     int64
	TotalProjects  int64
	TotalTasks     int64
	CompletedTasks int64
}

// StatsRepository defines the interface for dashboard aggregate queries
type StatsRepository interface {
	// Counts returns current entity counts in one pass
	Counts() (*Stats, error)
}
