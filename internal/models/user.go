package models

import (
	"gorm.io/gorm"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleProjectManager UserRole = "project_manager"
	RoleDeveloper      UserRole = "developer"
	RoleClient         UserRole = "client"
)

// User represents a user in the system
type User struct {
	ID       string   `json:"id" gorm:"primaryKey"`
	Username string   `json:"username" gorm:"unique;not null"`
	Password string   `json:"-" gorm:"not null"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role" gorm:"default:'developer'"`
	gorm.Model
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
