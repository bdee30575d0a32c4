package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"project-board-api/internal/database"
	"project-board-api/internal/middleware"
	"project-board-api/internal/models"
	"project-board-api/internal/store"
	"project-board-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newStatusRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.GET("/api/projects/:id/workflow-statuses", GetWorkflowStatuses)
	managed := r.Group("")
	managed.Use(middleware.RequireRole(models.RoleAdmin, models.RoleProjectManager))
	managed.POST("/api/projects/:id/workflow-statuses", CreateWorkflowStatus)
	managed.DELETE("/api/projects/:id/workflow-statuses/:statusId", DeleteWorkflowStatus)
	return r
}

func TestDeleteWorkflowStatus_ConflictWhenTasksAttached(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	_, project, token := seedManagerAndProject(t, db)

	statuses, err := store.OrderedStatuses(db, project.ID)
	require.NoError(t, err)
	backlog := statuses[0]

	_, err = store.CreateTask(db, project, store.CreateTaskParams{Title: "T", WorkflowStatusID: &backlog.ID})
	require.NoError(t, err)

	r := newStatusRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/projects/"+project.ID+"/workflow-statuses/"+backlog.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)

	// Status survived the rejected delete
	_, err = store.ResolveStatus(db, project.ID, backlog.ID)
	require.NoError(t, err)
}

func TestCreateWorkflowStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	_, project, token := seedManagerAndProject(t, db)

	r := newStatusRouter()

	body, _ := json.Marshal(map[string]any{
		"name":  "Code Review",
		"color": "#FF8800",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/projects/"+project.ID+"/workflow-statuses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.WorkflowStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "code-review", created.Slug)
	require.Equal(t, 6, created.Order) // appended after the six defaults
}

func TestGetWorkflowStatuses_Ordered(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	_, project, token := seedManagerAndProject(t, db)

	r := newStatusRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+project.ID+"/workflow-statuses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Statuses []models.WorkflowStatus `json:"statuses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Statuses, 6)
	for i, s := range resp.Statuses {
		require.Equal(t, i, s.Order)
	}
}
