package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TaskComment represents a comment on a task. A nil ParentID marks a
// top-level comment; a non-nil ParentID marks a reply to a top-level
// comment (one level of nesting only).
type TaskComment struct {
	ID       string  `json:"id" gorm:"primaryKey"`
	TaskID   string  `json:"taskId" gorm:"column:task_id;index;not null"`
	UserID   string  `json:"userId" gorm:"column:user_id"`
	ParentID *string `json:"parentId" gorm:"column:parent_id;index"`
	Content  string  `json:"content" gorm:"not null"`
	// Mentions holds user ids extracted client-side from @[Name](userId)
	// markers in the content; the server stores what it is given.
	Mentions datatypes.JSONSlice[string] `json:"mentions"`
	Replies  []TaskComment               `json:"replies" gorm:"-"`
	gorm.Model
}

// TableName specifies the table name for TaskComment Model
func (TaskComment) TableName() string {
	return "task_comments"
}

// AfterFind normalizes Mentions and Replies so they read back as empty
// lists, never null.
func (tc *TaskComment) AfterFind(_ *gorm.DB) error {
	if tc.Mentions == nil {
		tc.Mentions = datatypes.JSONSlice[string]{}
	}
	if tc.Replies == nil {
		tc.Replies = []TaskComment{}
	}
	return nil
}
