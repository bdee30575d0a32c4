package store

import (
	"testing"

	"project-board-api/internal/models"
	"project-board-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedProject(t *testing.T, db *gorm.DB, title string) *models.Project {
	t.Helper()
	owner := seedUser(t, db, "owner-"+uuid.NewString()[:8], models.RoleProjectManager)
	project, err := CreateProject(db, owner.ID, CreateProjectParams{Title: title})
	require.NoError(t, err)
	return project
}
