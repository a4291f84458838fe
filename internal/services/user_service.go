package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-tracker-api/internal/authz"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrForbidden is returned when the authorization engine denies an action.
	ErrForbidden = errors.New("access denied")
	// ErrSelfAction is returned when an admin targets their own account with
	// a destructive user-management action. It is a warning, not a violation.
	ErrSelfAction = errors.New("action not permitted on your own account")
)

// UserService handles admin user management.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers returns users sorted by username. Admin only.
func (s *UserService) ListUsers(principal *models.User, params utils.PaginationParams) ([]models.User, int64, error) {
	if !authz.Authorize(principal, authz.ActionListUsers, authz.Target{}).Permitted() {
		return nil, 0, ErrForbidden
	}

	users, total, err := s.userRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// EditUserInput holds the mutable fields of a user. Nil fields are left
// untouched.
type EditUserInput struct {
	Email     *string
	Username  *string
	Role      *models.Role
	FirstName *string
	LastName  *string
	Phone     *string
}

// EditUser updates a user's profile, identity, and role fields. Email and
// username uniqueness is re-checked in the same transaction as the write.
func (s *UserService) EditUser(principal *models.User, targetID uint64, input EditUserInput) (*models.User, error) {
	target, err := s.findUser(targetID)
	if err != nil {
		return nil, err
	}

	decision := authz.Authorize(principal, authz.ActionEditUser, authz.Target{TargetUser: target})
	if !decision.Permitted() {
		return nil, ErrForbidden
	}

	if input.Email != nil {
		target.Email = strings.TrimSpace(*input.Email)
	}
	if input.Username != nil {
		target.Username = strings.TrimSpace(*input.Username)
	}
	if input.Role != nil {
		target.Role = *input.Role
	}
	if input.FirstName != nil {
		target.FirstName = optionalString(*input.FirstName)
	}
	if input.LastName != nil {
		target.LastName = optionalString(*input.LastName)
	}
	if input.Phone != nil {
		target.Phone = optionalString(*input.Phone)
	}

	if err := s.userRepo.UpdateUnique(target); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return target, nil
}

// DeleteUser removes a user together with their projects and tasks. An admin
// cannot delete their own account.
func (s *UserService) DeleteUser(principal *models.User, targetID uint64) error {
	target, err := s.findUser(targetID)
	if err != nil {
		return err
	}

	decision := authz.Authorize(principal, authz.ActionDeleteUser, authz.Target{TargetUser: target})
	switch decision.Effect {
	case authz.Warn:
		return ErrSelfAction
	case authz.Deny:
		return ErrForbidden
	}

	if err := s.userRepo.DeleteCascade(target.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// ToggleRole flips a user's role between user and admin. An admin cannot
// change their own role.
func (s *UserService) ToggleRole(principal *models.User, targetID uint64) (*models.User, error) {
	target, err := s.findUser(targetID)
	if err != nil {
		return nil, err
	}

	decision := authz.Authorize(principal, authz.ActionToggleRole, authz.Target{TargetUser: target})
	switch decision.Effect {
	case authz.Warn:
		return nil, ErrSelfAction
	case authz.Deny:
		return nil, ErrForbidden
	}

	updated, err := s.userRepo.ToggleRole(target.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return updated, nil
}

func (s *UserService) findUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
