package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-tracker-api/internal/authz"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNameRequired = errors.New("project name is required")
	ErrProjectNameTooLong  = errors.New("project name too long")
	ErrDescriptionTooLong  = errors.New("description too long")
	ErrProjectNotFound     = errors.New("project not found")
	ErrAssigneeNotFound    = errors.New("assignee not found")
)

// ProjectService handles project business logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents input for creating a project. AssigneeID is
// the owner the project is created for; zero means the principal themselves.
type CreateProjectInput struct {
	Name        string
	Description string
	AssigneeID  uint64
}

// CreateProject validates input and creates a project with zero tasks. Only
// admins may assign the project to another user.
func (s *ProjectService) CreateProject(principal *models.User, input CreateProjectInput) (*models.Project, error) {
	decision := authz.Authorize(principal, authz.ActionCreateProject, authz.Target{AssigneeID: input.AssigneeID})
	if !decision.Permitted() {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}
	if len(name) > constants.MaxNameLength {
		return nil, ErrProjectNameTooLong
	}

	description := strings.TrimSpace(input.Description)
	if len(description) > constants.MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	ownerID := input.AssigneeID
	if ownerID == 0 {
		ownerID = principal.ID
	}
	if ownerID != principal.ID {
		if _, err := s.userRepo.FindByID(ownerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to find assignee: %w", err)
		}
	}

	project := &models.Project{
		Name:    name,
		OwnerID: ownerID,
	}
	if description != "" {
		project.Description = &description
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject returns a project with its tasks, enforcing the ownership rule.
func (s *ProjectService) GetProject(principal *models.User, projectID uint64) (*models.Project, error) {
	project, err := s.findProject(projectID)
	if err != nil {
		return nil, err
	}

	if !authz.Authorize(principal, authz.ActionViewProject, authz.Target{Project: project}).Permitted() {
		return nil, ErrForbidden
	}

	return project, nil
}

// ListProjects returns the projects visible to the principal: every project
// for admins, otherwise the principal's own.
func (s *ProjectService) ListProjects(principal *models.User) ([]models.Project, error) {
	if principal.IsAdmin() {
		projects, err := s.projectRepo.ListAll()
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}
		return projects, nil
	}

	projects, err := s.projectRepo.ListByOwner(principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) findProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, "Tasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
