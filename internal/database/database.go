package database

import (
	"project-board-api/internal/config"
	"project-board-api/internal/logutils"
	"project-board-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB initializes the database connection and runs migrations
func InitDB(cfg *config.Config) {
	var err error

	// Using glebarez/sqlite which is a pure Go implementation (no CGO required)
	DB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		logutils.Log.Fatal("Failed to connect to database: ", err)
	}

	// Auto-migrate the schema (it will create tables if they don't exist)
	err = DB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.WorkflowStatus{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.TaskComment{},
	)

	if err != nil {
		logutils.Log.Fatal("Failed to migrate database: ", err)
	}

	logutils.Log.WithField("db", cfg.DBPath).Info("Database connected and migrated")
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
