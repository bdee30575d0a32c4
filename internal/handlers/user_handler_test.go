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
	"github.com/stretchr/testify/require"
)

func TestGetAllUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	// Seed some users
	_ = db.Create(&models.User{ID: "u-1", Username: "alice", Password: "x", Role: models.RoleProjectManager}).Error
	_ = db.Create(&models.User{ID: "u-2", Username: "bob", Password: "x", Role: models.RoleDeveloper}).Error

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.GET("/api/users", GetAllUsers)

	token, _ := auth.GenerateToken("u-1", "alice", models.RoleProjectManager)
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
