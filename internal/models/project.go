package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectStatus represents the lifecycle status of a project
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

// Project represents a project in the system. A project owns its tasks and
// workflow statuses; deleting a project cascades both (enforced in the store,
// not by the database).
type Project struct {
	ID               string        `json:"id" gorm:"primaryKey"`
	Title            string        `json:"title" gorm:"not null"`
	Description      string        `json:"description"`
	OwnerID          string        `json:"ownerId" gorm:"column:owner_id;index"`
	ClientID         string        `json:"clientId" gorm:"column:client_id;index"`
	ProjectManagerID string        `json:"projectManagerId" gorm:"column:project_manager_id"`
	Deadline         *time.Time    `json:"deadline"`
	Status           ProjectStatus `json:"status" gorm:"default:'active'"`
	gorm.Model
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}

// ProjectMember links a user to a project. Role is copied from the user at
// join time so membership queries (e.g. "all developers of this project")
// don't need a join against users.
type ProjectMember struct {
	ProjectID string    `json:"projectId" gorm:"primaryKey;column:project_id"`
	UserID    string    `json:"userId" gorm:"primaryKey;column:user_id"`
	Role      UserRole  `json:"role"`
	JoinedAt  time.Time `json:"joinedAt" gorm:"column:joined_at"`
}

// TableName specifies the table name for ProjectMember Model
func (ProjectMember) TableName() string {
	return "project_members"
}
