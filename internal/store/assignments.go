package store

import (
	"errors"
	"time"

	"project-board-api/internal/models"

	"gorm.io/gorm"
)

// AssignUsers attaches the given users to the task, one TaskAssignment row
// per (task, user) pair. Pairs that already exist are skipped, so
// re-assignment is idempotent.
func AssignUsers(db *gorm.DB, task *models.Task, userIDs []string, assignedBy string) error {
	if len(userIDs) == 0 {
		return nil
	}

	var existing []string
	if err := db.Model(&models.TaskAssignment{}).
		Where("task_id = ?", task.ID).
		Pluck("user_id", &existing).Error; err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		seen[id] = struct{}{}
	}

	now := time.Now()
	var rows []models.TaskAssignment
	for _, userID := range userIDs {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		rows = append(rows, models.TaskAssignment{
			TaskID:     task.ID,
			UserID:     userID,
			AssignedAt: now,
			AssignedBy: assignedBy,
		})
	}
	if len(rows) > 0 {
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
	}
	return syncLegacyAssignee(db, task)
}

// UnassignUser removes the (task, user) assignment if present.
func UnassignUser(db *gorm.DB, task *models.Task, userID string) error {
	if err := db.Where("task_id = ? AND user_id = ?", task.ID, userID).
		Delete(&models.TaskAssignment{}).Error; err != nil {
		return err
	}
	return syncLegacyAssignee(db, task)
}

// AssignedUsers returns the users assigned to a task, in assignment order.
func AssignedUsers(db *gorm.DB, taskID string) ([]models.User, error) {
	var users []models.User
	err := db.Model(&models.User{}).
		Joins("JOIN task_assignments ON task_assignments.user_id = users.id").
		Where("task_assignments.task_id = ?", taskID).
		Order("task_assignments.assigned_at asc, users.id asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// AssignDefaultUsers applies the auto-fill policy: a task created with no
// explicit assignees is assigned to every developer member of its project.
func AssignDefaultUsers(db *gorm.DB, task *models.Task, assignedBy string) error {
	devs, err := DeveloperIDs(db, task.ProjectID)
	if err != nil {
		return err
	}
	return AssignUsers(db, task, devs, assignedBy)
}

// syncLegacyAssignee keeps Task.AssignedTo mirroring the first assignee.
// The task_assignments table is the source of truth; the legacy column is a
// derived convenience only.
func syncLegacyAssignee(db *gorm.DB, task *models.Task) error {
	var first models.TaskAssignment
	err := db.Where("task_id = ?", task.ID).
		Order("assigned_at asc, user_id asc").
		First(&first).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			task.AssignedTo = nil
			return db.Model(task).Update("assigned_to", nil).Error
		}
		return err
	}
	task.AssignedTo = &first.UserID
	return db.Model(task).Update("assigned_to", first.UserID).Error
}
