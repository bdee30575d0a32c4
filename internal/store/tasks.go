package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"project-board-api/internal/apperrors"
	"project-board-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateTaskParams are the caller-supplied fields for a new task.
type CreateTaskParams struct {
	Title            string
	Description      string
	Priority         models.TaskPriority
	WorkflowStatusID *string
	StartDate        *time.Time
	DueDate          *time.Time
	EstimatedHours   float64
	Labels           []string
	Order            *int
}

// CreateTask inserts a task into the project. A task created into a board
// column without an explicit order is appended to the end of that column.
// Assignment fan-out is handled separately by the caller.
func CreateTask(db *gorm.DB, project *models.Project, params CreateTaskParams) (*models.Task, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, apperrors.Invalid("title", "title is required")
	}

	priority := params.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	if params.WorkflowStatusID != nil {
		if _, err := ResolveStatus(db, project.ID, *params.WorkflowStatusID); err != nil {
			return nil, err
		}
	}

	order := 0
	if params.Order != nil {
		order = *params.Order
	} else if params.WorkflowStatusID != nil {
		next, err := nextColumnOrder(db, project.ID, *params.WorkflowStatusID)
		if err != nil {
			return nil, err
		}
		order = next
	}

	labels := params.Labels
	if labels == nil {
		labels = []string{}
	}

	task := models.Task{
		ID:               uuid.NewString(),
		ProjectID:        project.ID,
		Title:            params.Title,
		Description:      params.Description,
		Status:           models.StatusOpen,
		WorkflowStatusID: params.WorkflowStatusID,
		Priority:         priority,
		StartDate:        params.StartDate,
		DueDate:          params.DueDate,
		EstimatedHours:   params.EstimatedHours,
		Labels:           datatypes.NewJSONSlice(labels),
		Order:            order,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// nextColumnOrder returns the next append position within a board column,
// scoped per (project, workflow status).
func nextColumnOrder(db *gorm.DB, projectID, statusID string) (int, error) {
	var maxOrder sql.NullInt64
	err := db.Model(&models.Task{}).
		Where("project_id = ? AND workflow_status_id = ?", projectID, statusID).
		Select("MAX(position)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, err
	}
	if !maxOrder.Valid {
		return 0, nil
	}
	return int(maxOrder.Int64) + 1, nil
}

// GetTask loads a task by id, scoped to the project. A task under a
// different project resolves as not found.
func GetTask(db *gorm.DB, projectID, taskID string) (*models.Task, error) {
	var task models.Task
	if err := db.Where("id = ? AND project_id = ?", taskID, projectID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("task", taskID)
		}
		return nil, err
	}
	return &task, nil
}

// TaskFilter narrows a task listing.
type TaskFilter struct {
	Priority         models.TaskPriority
	WorkflowStatusID string
	AssignedUserID   string
}

// ListTasks returns the project's tasks, optionally filtered by priority,
// board column, or assigned user (joined through task_assignments).
func ListTasks(db *gorm.DB, projectID string, filter TaskFilter) ([]models.Task, error) {
	query := db.Model(&models.Task{}).Where("tasks.project_id = ?", projectID)
	if filter.Priority != "" {
		query = query.Where("tasks.priority = ?", filter.Priority)
	}
	if filter.WorkflowStatusID != "" {
		query = query.Where("tasks.workflow_status_id = ?", filter.WorkflowStatusID)
	}
	if filter.AssignedUserID != "" {
		query = query.
			Joins("JOIN task_assignments ON task_assignments.task_id = tasks.id").
			Where("task_assignments.user_id = ?", filter.AssignedUserID)
	}
	var tasks []models.Task
	if err := query.Order("tasks.created_at asc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskParams are the optional fields for a task update. Board
// position changes go through MoveTask instead.
type UpdateTaskParams struct {
	Title          *string
	Description    *string
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	StartDate      *time.Time
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	Labels         []string
}

// UpdateTask applies the provided fields to the task.
func UpdateTask(db *gorm.DB, task *models.Task, params UpdateTaskParams) error {
	if params.Title != nil {
		if strings.TrimSpace(*params.Title) == "" {
			return apperrors.Invalid("title", "title is required")
		}
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Status != nil {
		task.Status = *params.Status
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.StartDate != nil {
		task.StartDate = params.StartDate
	}
	if params.DueDate != nil {
		task.DueDate = params.DueDate
	}
	if params.EstimatedHours != nil {
		task.EstimatedHours = *params.EstimatedHours
	}
	if params.ActualHours != nil {
		task.ActualHours = *params.ActualHours
	}
	if params.Labels != nil {
		task.Labels = datatypes.NewJSONSlice(params.Labels)
	}
	return db.Save(task).Error
}

// DeleteTask removes a task together with its assignments and comments.
func DeleteTask(db *gorm.DB, task *models.Task) error {
	if err := db.Where("task_id = ?", task.ID).Delete(&models.TaskAssignment{}).Error; err != nil {
		return err
	}
	if err := db.Where("task_id = ?", task.ID).Delete(&models.TaskComment{}).Error; err != nil {
		return err
	}
	return db.Delete(task).Error
}
