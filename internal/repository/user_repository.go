package repository

import (
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateUnique creates a new user. The uniqueness check and the insert run in
// one transaction so concurrent registrations cannot both pass the check.
func (r *GormUserRepository) CreateUnique(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkIdentityFree(tx, user.Email, user.Username, 0); err != nil {
			return err
		}
		return tx.Create(user).Error
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin finds a user by email or username
func (r *GormUserRepository) FindByLogin(login string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ? OR username = ?", login, login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// checkIdentityFree fails with ErrEmailExists or ErrUsernameExists when a user
// other than excludeID already holds the email or username.
func checkIdentityFree(tx *gorm.DB, email, username string, excludeID uint64) error {
	var count int64
	query := tx.Model(&models.User{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailExists
	}

	query = tx.Model(&models.User{}).Where("username = ?", username)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameExists
	}
	return nil
}

// List retrieves users ordered by username with pagination
func (r *GormUserRepository) List(params utils.PaginationParams) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := r.db.Order("username ASC").
		Scopes(database.Paginate(params)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateUnique saves a user. The uniqueness re-check and the write run in one
// transaction so a concurrent edit cannot slip a duplicate identity past it.
func (r *GormUserRepository) UpdateUnique(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkIdentityFree(tx, user.Email, user.Username, user.ID); err != nil {
			return err
		}
		return tx.Save(user).Error
	})
}

// ToggleRole flips a user's role. The row is re-read inside the transaction so
// concurrent toggles cannot lose an update.
func (r *GormUserRepository) ToggleRole(id uint64) (*models.User, error) {
	var user models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		user.Role = user.Role.Toggle()
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteCascade removes a user, their projects, and those projects' tasks in
// a single transaction.
func (r *GormUserRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var projectIDs []uint64
		if err := tx.Model(&models.Project{}).
			Where("owner_id = ?", id).
			Pluck("id", &projectIDs).Error; err != nil {
			return err
		}

		if len(projectIDs) > 0 {
			if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.Task{}).Error; err != nil {
				return err
			}
			if err := tx.Where("owner_id = ?", id).Delete(&models.Project{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
