package services

import (
	"fmt"

	"github.com/yukikurage/project-tracker-api/internal/authz"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

// DashboardService computes system-wide aggregates for the admin dashboard.
type DashboardService struct {
	statsRepo repository.StatsRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(statsRepo repository.StatsRepository) *DashboardService {
	return &DashboardService{
		statsRepo: statsRepo,
	}
}

// DashboardStats holds the admin dashboard aggregates. PendingTasks and
// CompletionRate are derived from the raw counts with the same formula as
// per-project progress.
type DashboardStats struct {
	TotalUsers     int64
	TotalProjects  int64
	TotalTasks     int64
	CompletedTasks int64
	PendingTasks   int64
	CompletionRate int
}

// Stats returns current system-wide aggregates. Admin only.
func (s *DashboardService) Stats(principal *models.User) (*DashboardStats, error) {
	if !authz.Authorize(principal, authz.ActionViewStats, authz.Target{}).Permitted() {
		return nil, ErrForbidden
	}

	counts, err := s.statsRepo.Counts()
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return &DashboardStats{
		TotalUsers:     counts.TotalUsers,
		TotalProjects:  counts.TotalProjects,
		TotalTasks:     counts.TotalTasks,
		CompletedTasks: counts.CompletedTasks,
		PendingTasks:   counts.TotalTasks - counts.CompletedTasks,
		CompletionRate: models.CompletionPercent(int(counts.CompletedTasks), int(counts.TotalTasks)),
	}, nil
}
