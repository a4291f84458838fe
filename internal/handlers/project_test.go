package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type projectTestEnv struct {
	db             *gorm.DB
	handler        *ProjectHandler
	projectService *services.ProjectService
	taskService    *services.TaskService
}

func setupProjectTestEnv(t *testing.T) projectTestEnv {
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
	taskRepo := repository.NewTaskRepository(db)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	handler := NewProjectHandler(projectService, taskService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return projectTestEnv{
		db:             db,
		handler:        handler,
		projectService: projectService,
		taskService:    taskService,
	}
}

func createProjectTestUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "hashed",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func projectTestContext(method, url string, body []byte, principal *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, principal.ID)
	c.Set(constants.ContextKeyUser, *principal)

	return c, w
}

// projectAccessRouter mounts GetProjectTasks behind the real ownership
// middleware, with a stub auth middleware injecting the principal.
func projectAccessRouter(env projectTestEnv, principal *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, principal.ID)
		c.Set(constants.ContextKeyUser, *principal)
	})
	r.GET("/api/projects/:id/tasks", middleware.RequireProjectAccess(), env.handler.GetProjectTasks)
	return r
}

func TestProjectHandler_CreateProject(t *testing.T) {
	env := setupProjectTestEnv(t)
	alice := createProjectTestUser(t, env.db, "alice", models.RoleUser)

	body, err := json.Marshal(map[string]string{
		"name":        "  Site Revamp  ",
		"description": "",
	})
	require.NoError(t, err)

	c, w := projectTestContext(http.MethodPost, "/api/projects", body, alice)

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Site Revamp", response.Name)
	require.Equal(t, alice.ID, response.OwnerID)
	require.Equal(t, 0, response.Progress)

	// Empty description normalized to null
	var stored models.Project
	require.NoError(t, env.db.First(&stored, response.ID).Error)
	require.Nil(t, stored.Description)
}

func TestProjectHandler_CreateProject_BlankName(t *testing.T) {
	env := setupProjectTestEnv(t)
	alice := createProjectTestUser(t, env.db, "alice", models.RoleUser)

	body, err := json.Marshal(map[string]string{"name": "   "})
	require.NoError(t, err)

	c, w := projectTestContext(http.MethodPost, "/api/projects", body, alice)

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_CreateProject_AssignOtherForbiddenForUser(t *testing.T) {
	env := setupProjectTestEnv(t)
	alice := createProjectTestUser(t, env.db, "alice", models.RoleUser)
	bob := createProjectTestUser(t, env.db, "bob", models.RoleUser)

	body, err := json.Marshal(map[string]interface{}{
		"name":        "Someone else's project",
		"assignee_id": bob.ID,
	})
	require.NoError(t, err)

	c, w := projectTestContext(http.MethodPost, "/api/projects", body, alice)

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Project{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestProjectHandler_CreateProject_AdminAssignsToOther(t *testing.T) {
	env := setupProjectTestEnv(t)
	admin := createProjectTestUser(t, env.db, "alice", models.RoleAdmin)
	bob := createProjectTestUser(t, env.db, "bob", models.RoleUser)

	body, err := json.Marshal(map[string]interface{}{
		"name":        "Bob's project",
		"assignee_id": bob.ID,
	})
	require.NoError(t, err)

	c, w := projectTestContext(http.MethodPost, "/api/projects", body, admin)

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, bob.ID, response.OwnerID)
}

func TestProjectHandler_CreateProject_AssigneeNotFound(t *testing.T) {
	env := setupProjectTestEnv(t)
	admin := createProjectTestUser(t, env.db, "admin", models.RoleAdmin)

	body, err := json.Marshal(map[string]interface{}{
		"name":        "Orphan project",
		"assignee_id": 99,
	})
	require.NoError(t, err)

	c, w := projectTestContext(http.MethodPost, "/api/projects", body, admin)

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_GetProjectTasks_OwnershipEnforced(t *testing.T) {
	env := setupProjectTestEnv(t)
	alice := createProjectTestUser(t, env.db, "alice", models.RoleUser)
	bob := createProjectTestUser(t, env.db, "bob", models.RoleUser)
	admin := createProjectTestUser(t, env.db, "admin", models.RoleAdmin)

	project, err := env.projectService.CreateProject(alice, services.CreateProjectInput{Name: "Private"})
	require.NoError(t, err)

	url := "/api/projects/1/tasks"

	// Owner sees the project
	w := httptest.NewRecorder()
	projectAccessRouter(env, alice).ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var detail dto.ProjectDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Equal(t, project.ID, detail.ID)

	// Non-owner is forbidden
	w = httptest.NewRecorder()
	projectAccessRouter(env, bob).ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusForbidden, w.Code)

	// Admin sees any project
	w = httptest.NewRecorder()
	projectAccessRouter(env, admin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code)

	// Missing project is a 404
	w = httptest.NewRecorder()
	projectAccessRouter(env, alice).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/99/tasks", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectProgress_TracksTaskCompletion(t *testing.T) {
	env := setupProjectTestEnv(t)
	alice := createProjectTestUser(t, env.db, "alice", models.RoleUser)

	project, err := env.projectService.CreateProject(alice, services.CreateProjectInput{Name: "Site Revamp"})
	require.NoError(t, err)

	loaded, err := env.projectService.GetProject(alice, project.ID)
	require.NoError(t, err)
	require.Equal(t, 0, loaded.Progress())

	task, err := env.taskService.AddTask(alice, project.ID, services.AddTaskInput{
		Title:    "Design mockup",
		Priority: models.TaskPriorityHigh,
	})
	require.NoError(t, err)

	loaded, err = env.projectService.GetProject(alice, project.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Tasks, 1)
	require.Equal(t, 0, loaded.Progress())

	_, err = env.taskService.CompleteTask(alice, task.ID)
	require.NoError(t, err)

	loaded, err = env.projectService.GetProject(alice, project.ID)
	require.NoError(t, err)
	require.Equal(t, 100, loaded.Progress())
}
