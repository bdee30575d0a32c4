package models

import (
	"time"
)

// TaskAssignment links a task to an assigned user. Many-to-many between
// tasks and users; supersedes the legacy Task.AssignedTo field.
type TaskAssignment struct {
	TaskID     string    `json:"taskId" gorm:"primaryKey;column:task_id"`
	UserID     string    `json:"userId" gorm:"primaryKey;column:user_id"`
	AssignedAt time.Time `json:"assignedAt" gorm:"column:assigned_at"`
	AssignedBy string    `json:"assignedBy" gorm:"column:assigned_by"`
}

// TableName specifies the table name for TaskAssignment Model
func (TaskAssignment) TableName() string {
	return "task_assignments"
}
