package repository

import (
	"github.com/yukikurage/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormStatsRepository is a GORM implementation of StatsRepository
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &GormStatsRepository{db: db}
}

// Counts returns current entity counts for the admin dashboard.
func (r *GormStatsRepository) Counts() (*Stats, error) {
	var stats Stats

	if err := r.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Project{}).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Task{}).Count(&stats.TotalTasks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Task{}).
		Where("status = ?", models.TaskStatusCompleted).
		Count(&stats.CompletedTasks).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
