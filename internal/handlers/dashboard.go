package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// DashboardHandler serves the role-dependent dashboard view.
type DashboardHandler struct {
	dashboardService *services.DashboardService
	projectService   *services.ProjectService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService, projectService *services.ProjectService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		projectService:   projectService,
	}
}

// Dashboard returns system-wide aggregates plus all projects for admins, or
// the principal's own project list otherwise.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	principal, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projects, err := h.projectService.ListProjects(principal)
	if err != nil {
		apierrors.InternalError(c, "Failed to load projects")
		return
	}

	if !principal.IsAdmin() {
		c.JSON(http.StatusOK, dto.UserDashboardDTO{
			Username: principal.Username,
			Projects: dto.ToProjectDTOs(projects),
		})
		return
	}

	stats, err := h.dashboardService.Stats(principal)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, dto.AdminDashboardDTO{
		Stats:    dto.ToDashboardStatsDTO(*stats),
		Projects: dto.ToProjectDTOs(projects),
	})
}
