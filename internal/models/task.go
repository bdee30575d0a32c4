package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TaskStatus represents the legacy coarse status of a task
type TaskStatus string

const (
	StatusOpen TaskStatus = "open"
	StatusDone TaskStatus = "done"
)

// TaskPriority represents the priority of a task
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Assignee represents a task assignee in API responses
type Assignee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task represents a task in the system. Board position is the pair
// (WorkflowStatusID, Order); Order is scoped per column and is not
// guaranteed unique under concurrent moves.
type Task struct {
	ID               string                      `json:"id" gorm:"primaryKey"`
	ProjectID        string                      `json:"projectId" gorm:"column:project_id;index;not null"`
	Title            string                      `json:"title" gorm:"not null"`
	Description      string                      `json:"description"`
	Status           TaskStatus                  `json:"status" gorm:"not null;default:'open'"`
	WorkflowStatusID *string                     `json:"workflowStatusId" gorm:"column:workflow_status_id;index"`
	Priority         TaskPriority                `json:"priority" gorm:"default:'medium'"`
	StartDate        *time.Time                  `json:"startDate" gorm:"column:start_date"`
	DueDate          *time.Time                  `json:"dueDate" gorm:"column:due_date"`
	EstimatedHours   float64                     `json:"estimatedHours" gorm:"column:estimated_hours"`
	ActualHours      float64                     `json:"actualHours" gorm:"column:actual_hours"`
	Labels           datatypes.JSONSlice[string] `json:"labels"`
	Order            int                         `json:"order" gorm:"column:position;not null;default:0"`
	// AssignedTo is a legacy single-assignee mirror. TaskAssignment rows are
	// the source of truth; this field holds the first assignee, if any.
	AssignedTo *string    `json:"assignedTo" gorm:"column:assigned_to"`
	Assignees  []Assignee `json:"assignees" gorm:"-"`
	gorm.Model
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// AfterFind normalizes Labels so an unset column reads back as an empty
// list, never null.
func (t *Task) AfterFind(_ *gorm.DB) error {
	if t.Labels == nil {
		t.Labels = datatypes.JSONSlice[string]{}
	}
	return nil
}
