package dto

import (
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// DashboardStatsDTO represents the admin dashboard aggregates
type DashboardStatsDTO struct {
	TotalUsers     int64 `json:"total_users"`
	TotalProjects  int64 `json:"total_projects"`
	TotalTasks     int64 `json:"total_tasks"`
	CompletedTasks int64 `json:"completed_tasks"`
	PendingTasks   int64 `json:"pending_tasks"`
	CompletionRate int   `json:"completion_rate"`
}

// AdminDashboardDTO is the dashboard payload for admins
type AdminDashboardDTO struct {
	Stats    DashboardStatsDTO `json:"stats"`
	Projects []ProjectDTO      `json:"projects"`
}

// UserDashboardDTO is the dashboard payload for regular users
type UserDashboardDTO struct {
	Username string       `json:"username"`
	Projects []ProjectDTO `json:"projects"`
}

// ToDashboardStatsDTO converts dashboard stats to DTO
func ToDashboardStatsDTO(stats services.DashboardStats) DashboardStatsDTO {
	return DashboardStatsDTO{
		TotalUsers:     stats.TotalUsers,
		TotalProjects:  stats.TotalProjects,
		TotalTasks:     stats.TotalTasks,
		CompletedTasks: stats.CompletedTasks,
		PendingTasks:   stats.PendingTasks,
		CompletionRate: stats.CompletionRate,
	}
}
