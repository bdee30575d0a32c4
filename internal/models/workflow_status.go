package models

import (
	"gorm.io/gorm"
)

// WorkflowStatus represents a board column within a project. Columns are
// ordered by Order ascending; values need not be contiguous.
type WorkflowStatus struct {
	ID          string `json:"id" gorm:"primaryKey"`
	ProjectID   string `json:"projectId" gorm:"column:project_id;index;not null"`
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug"`
	Color       string `json:"color"`
	Order       int    `json:"order" gorm:"column:position;not null;default:0"`
	IsDefault   bool   `json:"is_default" gorm:"column:is_default"`
	IsCompleted bool   `json:"is_completed" gorm:"column:is_completed"`
	gorm.Model
}

// TableName specifies the table name for WorkflowStatus Model
func (WorkflowStatus) TableName() string {
	return "workflow_statuses"
}
