package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"project-board-api/internal/auth"
	"project-board-api/internal/database"
	"project-board-api/internal/middleware"
	"project-board-api/internal/models"
	"project-board-api/internal/store"
	"project-board-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedManagerAndProject(t *testing.T, db *gorm.DB) (*models.User, *models.Project, string) {
	t.Helper()
	manager := models.User{ID: uuid.NewString(), Username: "pm-" + uuid.NewString()[:8], Password: "x", Role: models.RoleProjectManager}
	require.NoError(t, db.Create(&manager).Error)

	project, err := store.CreateProject(db, manager.ID, store.CreateProjectParams{Title: "Website"})
	require.NoError(t, err)
	_, err = store.CreateDefaultStatuses(db, project.ID)
	require.NoError(t, err)

	token, err := auth.GenerateToken(manager.ID, manager.Username, manager.Role)
	require.NoError(t, err)
	return &manager, project, token
}

func newTaskRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.POST("/api/projects/:id/tasks", CreateTask)
	r.GET("/api/projects/:id/tasks/:taskId", GetTaskByID)
	r.PATCH("/api/projects/:id/tasks/:taskId/status", MoveTaskStatus)
	r.GET("/api/projects/:id/board", GetBoard)
	return r
}

func TestCreateTask_DefaultFanOut(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	_, project, token := seedManagerAndProject(t, db)

	// Three developer members get the task by default
	for i := 0; i < 3; i++ {
		dev := models.User{ID: uuid.NewString(), Username: fmt.Sprintf("dev-%d", i), Password: "x", Role: models.RoleDeveloper}
		require.NoError(t, db.Create(&dev).Error)
		require.NoError(t, store.AddMember(db, project.ID, dev.ID))
	}

	r := newTaskRouter()

	payload := map[string]any{
		"title":          "Build landing page",
		"labels":         []string{"frontend"},
		"assigned_users": []string{},
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/projects/"+project.ID+"/tasks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, models.PriorityMedium, created.Priority)
	require.Len(t, created.Assignees, 3)

	var count int64
	require.NoError(t, db.Model(&models.TaskAssignment{}).Where("task_id = ?", created.ID).Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func TestMoveTaskStatus_Endpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	_, project, token := seedManagerAndProject(t, db)

	statuses, err := store.OrderedStatuses(db, project.ID)
	require.NoError(t, err)
	backlog := statuses[0]
	done := statuses[len(statuses)-1]

	task, err := store.CreateTask(db, project, store.CreateTaskParams{Title: "T", WorkflowStatusID: &backlog.ID})
	require.NoError(t, err)

	r := newTaskRouter()

	body, _ := json.Marshal(map[string]any{
		"workflow_status_id": done.ID,
		"order":              0,
	})
	req := httptest.NewRequest(http.MethodPatch, "/api/projects/"+project.ID+"/tasks/"+task.ID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	got, err := store.GetTask(db, project.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, done.ID, *got.WorkflowStatusID)
	require.Equal(t, 0, got.Order)
}

func TestMoveTaskStatus_ForeignStatusIs404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	_, project, token := seedManagerAndProject(t, db)
	_, other, _ := seedManagerAndProject(t, db)

	otherStatuses, err := store.OrderedStatuses(db, other.ID)
	require.NoError(t, err)

	statuses, err := store.OrderedStatuses(db, project.ID)
	require.NoError(t, err)

	task, err := store.CreateTask(db, project, store.CreateTaskParams{Title: "T", WorkflowStatusID: &statuses[0].ID})
	require.NoError(t, err)

	r := newTaskRouter()

	body, _ := json.Marshal(map[string]any{
		"workflow_status_id": otherStatuses[0].ID,
		"order":              0,
	})
	req := httptest.NewRequest(http.MethodPatch, "/api/projects/"+project.ID+"/tasks/"+task.ID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBoard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	_, project, token := seedManagerAndProject(t, db)

	statuses, err := store.OrderedStatuses(db, project.ID)
	require.NoError(t, err)
	_, err = store.CreateTask(db, project, store.CreateTaskParams{Title: "T", WorkflowStatusID: &statuses[0].ID})
	require.NoError(t, err)

	r := newTaskRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+project.ID+"/board", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Columns []store.BoardColumn `json:"columns"`
		Count   int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 6, resp.Count)
	require.Len(t, resp.Columns[0].Tasks, 1)
}
