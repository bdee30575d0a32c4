package store

import (
	"project-board-api/internal/models"

	"gorm.io/gorm"
)

// BoardColumn is one column of the board snapshot: a status and the tasks
// currently positioned in it.
type BoardColumn struct {
	Status models.WorkflowStatus `json:"status"`
	Tasks  []models.Task         `json:"tasks"`
}

// MoveTask moves a task to a board position (statusID, order). Any column
// of the same project is a legal target; there is no enforced progression,
// and landing on a completed column has no side effect on the legacy task
// status. The write touches only the moved task's row — sibling orders are
// not rewritten, so concurrent drags may produce duplicate orders and the
// client resynchronizes by refetching the board.
func MoveTask(db *gorm.DB, project *models.Project, taskID, statusID string, order int) (*models.Task, error) {
	task, err := GetTask(db, project.ID, taskID)
	if err != nil {
		return nil, err
	}
	status, err := ResolveStatus(db, project.ID, statusID)
	if err != nil {
		return nil, err
	}

	task.WorkflowStatusID = &status.ID
	task.Order = order
	err = db.Model(task).Updates(map[string]any{
		"workflow_status_id": status.ID,
		"position":           order,
	}).Error
	if err != nil {
		return nil, err
	}
	return task, nil
}

// BoardColumns returns the full board snapshot: ordered columns, each with
// its tasks sorted by stored order (creation time breaks ties). Task orders
// in the snapshot are re-ranked densely on read rather than trusting stored
// gaps.
func BoardColumns(db *gorm.DB, projectID string) ([]BoardColumn, error) {
	statuses, err := OrderedStatuses(db, projectID)
	if err != nil {
		return nil, err
	}

	columns := make([]BoardColumn, 0, len(statuses))
	for _, status := range statuses {
		var tasks []models.Task
		err := db.Where("project_id = ? AND workflow_status_id = ?", projectID, status.ID).
			Order("position asc, created_at asc").
			Find(&tasks).Error
		if err != nil {
			return nil, err
		}
		for i := range tasks {
			tasks[i].Order = i
		}
		columns = append(columns, BoardColumn{Status: status, Tasks: tasks})
	}
	return columns, nil
}
