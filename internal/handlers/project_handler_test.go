package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"project-board-api/internal/auth"
	"project-board-api/internal/database"
	"project-board-api/internal/middleware"
	"project-board-api/internal/models"
	"project-board-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newProjectRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.GET("/api/projects", GetProjects)
	r.GET("/api/projects/:id", GetProject)
	return r
}

func TestGetProject_ClientCannotSeeOthersProject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	_, project, _ := seedManagerAndProject(t, db)

	client := models.User{ID: uuid.NewString(), Username: "client", Password: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&client).Error)
	token, err := auth.GenerateToken(client.ID, client.Username, client.Role)
	require.NoError(t, err)

	r := newProjectRouter()

	// The project has a different (empty) client id, so it resolves as 404
	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+project.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProjects_ClientSeesOnlyOwn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	client := models.User{ID: uuid.NewString(), Username: "client2", Password: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&client).Error)

	_, other, _ := seedManagerAndProject(t, db)
	_ = other

	mine := models.Project{ID: uuid.NewString(), Title: "Mine", ClientID: client.ID, Status: models.ProjectActive}
	require.NoError(t, db.Create(&mine).Error)

	token, err := auth.GenerateToken(client.ID, client.Username, client.Role)
	require.NoError(t, err)

	r := newProjectRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Mine")
	require.NotContains(t, w.Body.String(), "Website")
}
