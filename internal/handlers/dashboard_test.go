package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type dashboardTestEnv struct {
	db      *gorm.DB
	handler *DashboardHandler
}

func setupDashboardTestEnv(t *testing.T) dashboardTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	projectService := services.NewProjectService(projectRepo, userRepo)
	dashboardService := services.NewDashboardService(statsRepo)
	handler := NewDashboardHandler(dashboardService, projectService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return dashboardTestEnv{db: db, handler: handler}
}

func dashboardContext(principal *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	c.Set(constants.ContextKeyUserID, principal.ID)
	c.Set(constants.ContextKeyUser, *principal)
	return c, w
}

func seedDashboardData(t *testing.T, db *gorm.DB) (*models.User, *models.User) {
	t.Helper()

	admin := &models.User{Email: "admin@example.com", Username: "admin", PasswordHash: "h", Role: models.RoleAdmin}
	alice := &models.User{Email: "alice@example.com", Username: "alice", PasswordHash: "h", Role: models.RoleUser}
	require.NoError(t, db.Create(admin).Error)
	require.NoError(t, db.Create(alice).Error)

	project := &models.Project{Name: "Site Revamp", OwnerID: alice.ID}
	other := &models.Project{Name: "Admin Ops", OwnerID: admin.ID}
	require.NoError(t, db.Create(project).Error)
	require.NoError(t, db.Create(other).Error)

	tasks := []models.Task{
		{Title: "a", Priority: models.TaskPriorityMedium, Status: models.TaskStatusCompleted, ProjectID: project.ID},
		{Title: "b", Priority: models.TaskPriorityMedium, Status: models.TaskStatusPending, ProjectID: project.ID},
		{Title: "c", Priority: models.TaskPriorityMedium, Status: models.TaskStatusPending, ProjectID: other.ID},
	}
	require.NoError(t, db.Create(&tasks).Error)

	return admin, alice
}

func TestDashboard_AdminAggregates(t *testing.T) {
	env := setupDashboardTestEnv(t)
	admin, _ := seedDashboardData(t, env.db)

	c, w := dashboardContext(admin)
	env.handler.Dashboard(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AdminDashboardDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.EqualValues(t, 2, response.Stats.TotalUsers)
	require.EqualValues(t, 2, response.Stats.TotalProjects)
	require.EqualValues(t, 3, response.Stats.TotalTasks)
	require.EqualValues(t, 1, response.Stats.CompletedTasks)
	require.EqualValues(t, 2, response.Stats.PendingTasks)
	// floor(100 * 1 / 3)
	require.Equal(t, 33, response.Stats.CompletionRate)

	// Admin sees every project
	require.Len(t, response.Projects, 2)
}

func TestDashboard_AdminAggregates_Empty(t *testing.T) {
	env := setupDashboardTestEnv(t)

	admin := &models.User{Email: "admin@example.com", Username: "admin", PasswordHash: "h", Role: models.RoleAdmin}
	require.NoError(t, env.db.Create(admin).Error)

	c, w := dashboardContext(admin)
	env.handler.Dashboard(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AdminDashboardDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.EqualValues(t, 0, response.Stats.TotalTasks)
	require.Equal(t, 0, response.Stats.CompletionRate)
}

func TestDashboard_UserSeesOwnProjectsOnly(t *testing.T) {
	env := setupDashboardTestEnv(t)
	_, alice := seedDashboardData(t, env.db)

	c, w := dashboardContext(alice)
	env.handler.Dashboard(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDashboardDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "alice", response.Username)
	require.Len(t, response.Projects, 1)
	require.Equal(t, "Site Revamp", response.Projects[0].Name)
	// 1 of 2 tasks completed
	require.Equal(t, 50, response.Projects[0].Progress)
}
