package store

import (
	"errors"
	"strings"

	"project-board-api/internal/apperrors"
	"project-board-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PostComment inserts a comment on a task. A non-nil parentID makes the
// comment a reply; the parent must exist on the same task and itself be
// top-level, which keeps threads at one level of nesting. Mentions are
// stored as given by the client.
func PostComment(db *gorm.DB, task *models.Task, userID, content string, parentID *string, mentions []string) (*models.TaskComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.Invalid("content", "content is required")
	}

	if parentID != nil {
		var parent models.TaskComment
		if err := db.Where("id = ?", *parentID).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("comment", *parentID)
			}
			return nil, err
		}
		if parent.TaskID != task.ID {
			return nil, apperrors.NotFound("comment", *parentID)
		}
		if parent.ParentID != nil {
			return nil, apperrors.Invalid("parentId", "replies cannot be nested")
		}
	}

	if mentions == nil {
		mentions = []string{}
	}

	comment := models.TaskComment{
		ID:       uuid.NewString(),
		TaskID:   task.ID,
		UserID:   userID,
		ParentID: parentID,
		Content:  content,
		Mentions: datatypes.NewJSONSlice(mentions),
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns a task's top-level comments ordered by creation time
// ascending, each carrying its replies in the same order.
func ListComments(db *gorm.DB, taskID string) ([]models.TaskComment, error) {
	var topLevel []models.TaskComment
	err := db.Where("task_id = ? AND parent_id IS NULL", taskID).
		Order("created_at asc, id asc").
		Find(&topLevel).Error
	if err != nil {
		return nil, err
	}
	if len(topLevel) == 0 {
		return []models.TaskComment{}, nil
	}

	parentIDs := make([]string, 0, len(topLevel))
	for _, c := range topLevel {
		parentIDs = append(parentIDs, c.ID)
	}

	var replies []models.TaskComment
	err = db.Where("task_id = ? AND parent_id IN ?", taskID, parentIDs).
		Order("created_at asc, id asc").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]models.TaskComment, len(topLevel))
	for _, r := range replies {
		byParent[*r.ParentID] = append(byParent[*r.ParentID], r)
	}
	for i := range topLevel {
		if rs, ok := byParent[topLevel[i].ID]; ok {
			topLevel[i].Replies = rs
		}
	}
	return topLevel, nil
}

// GetComment loads a comment by id, scoped to the task.
func GetComment(db *gorm.DB, taskID, commentID string) (*models.TaskComment, error) {
	var comment models.TaskComment
	if err := db.Where("id = ? AND task_id = ?", commentID, taskID).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment", commentID)
		}
		return nil, err
	}
	return &comment, nil
}

// DeleteComment hard-deletes a comment. Deleting a top-level comment also
// deletes its replies so none are orphaned.
func DeleteComment(db *gorm.DB, comment *models.TaskComment) error {
	if comment.ParentID == nil {
		if err := db.Where("parent_id = ?", comment.ID).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}
	}
	return db.Delete(comment).Error
}
