package handlers

import (
	"net/http"
	"time"

	"project-board-api/internal/database"
	"project-board-api/internal/logutils"
	"project-board-api/internal/models"
	"project-board-api/internal/realtime"
	"project-board-api/internal/store"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title            string              `json:"title" binding:"required"`
	Description      string              `json:"description"`
	Priority         models.TaskPriority `json:"priority"`
	WorkflowStatusID *string             `json:"workflowStatusId"`
	StartDate        *time.Time          `json:"startDate"`
	DueDate          *time.Time          `json:"dueDate"`
	EstimatedHours   float64             `json:"estimatedHours"`
	Labels           []string            `json:"labels"`
	Order            *int                `json:"order"`
	AssignedUsers    []string            `json:"assigned_users"`
}

// UpdateTaskRequest represents the request payload for updating a task
type UpdateTaskRequest struct {
	Title          *string              `json:"title"`
	Description    *string              `json:"description"`
	Status         *models.TaskStatus   `json:"status"`
	Priority       *models.TaskPriority `json:"priority"`
	StartDate      *time.Time           `json:"startDate"`
	DueDate        *time.Time           `json:"dueDate"`
	EstimatedHours *float64             `json:"estimatedHours"`
	ActualHours    *float64             `json:"actualHours"`
	Labels         []string             `json:"labels"`
}

// MoveTaskRequest represents the board move payload: the target column and
// the position within it.
type MoveTaskRequest struct {
	WorkflowStatusID string `json:"workflow_status_id" binding:"required"`
	Order            int    `json:"order"`
}

// AssignUsersRequest represents the request payload for assigning users to a task
type AssignUsersRequest struct {
	UserIDs []string `json:"userIds" binding:"required"`
}

// GetTasks handles GET /api/projects/:id/tasks
// Optional query params: priority, workflowStatusId, assignedTo.
func GetTasks(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	filter := store.TaskFilter{
		Priority:         models.TaskPriority(c.Query("priority")),
		WorkflowStatusID: c.Query("workflowStatusId"),
		AssignedUserID:   c.Query("assignedTo"),
	}

	tasks, err := store.ListTasks(database.GetDB(), project.ID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	enrichAssignees(tasks)

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// CreateTask handles POST /api/projects/:id/tasks
// A task created with no explicit assignees is fanned out to every
// developer member of the project. Fan-out is not transactional with
// creation: if it fails the task simply exists unassigned.
func CreateTask(c *gin.Context) {
	userID := c.GetString("user_id")

	project := resolveProject(c)
	if project == nil {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	task, err := store.CreateTask(db, project, store.CreateTaskParams{
		Title:            req.Title,
		Description:      req.Description,
		Priority:         req.Priority,
		WorkflowStatusID: req.WorkflowStatusID,
		StartDate:        req.StartDate,
		DueDate:          req.DueDate,
		EstimatedHours:   req.EstimatedHours,
		Labels:           req.Labels,
		Order:            req.Order,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if len(req.AssignedUsers) > 0 {
		err = store.AssignUsers(db, task, req.AssignedUsers, userID)
	} else {
		err = store.AssignDefaultUsers(db, task, userID)
	}
	if err != nil {
		logutils.Log.WithField("task", task.ID).Warn("assignment fan-out failed: ", err)
	}

	tasks := []models.Task{*task}
	enrichAssignees(tasks)

	realtime.GetHub().BroadcastEvent(project.ID, "task_created", map[string]any{"taskId": task.ID})

	c.JSON(http.StatusCreated, tasks[0])
}

// GetTaskByID handles GET /api/projects/:id/tasks/:taskId
func GetTaskByID(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	task, err := store.GetTask(database.GetDB(), project.ID, c.Param("taskId"))
	if err != nil {
		respondError(c, err)
		return
	}

	tasks := []models.Task{*task}
	enrichAssignees(tasks)

	c.JSON(http.StatusOK, tasks[0])
}

// UpdateTask handles PUT /api/projects/:id/tasks/:taskId
func UpdateTask(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	db := database.GetDB()
	task, err := store.GetTask(db, project.ID, c.Param("taskId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = store.UpdateTask(db, task, store.UpdateTaskParams{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		Labels:         req.Labels,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	realtime.GetHub().BroadcastEvent(project.ID, "task_updated", map[string]any{"taskId": task.ID})

	c.JSON(http.StatusOK, task)
}

// MoveTaskStatus handles PATCH /api/projects/:id/tasks/:taskId/status
// The board move: a single-row update of (workflow_status_id, order).
func MoveTaskStatus(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := store.MoveTask(database.GetDB(), project, c.Param("taskId"), req.WorkflowStatusID, req.Order)
	if err != nil {
		respondError(c, err)
		return
	}

	realtime.GetHub().BroadcastEvent(project.ID, "task_moved", map[string]any{
		"taskId":   task.ID,
		"statusId": req.WorkflowStatusID,
	})

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/projects/:id/tasks/:taskId
func DeleteTask(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	db := database.GetDB()
	task, err := store.GetTask(db, project.ID, c.Param("taskId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := store.DeleteTask(db, task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	realtime.GetHub().BroadcastEvent(project.ID, "task_deleted", map[string]any{"taskId": task.ID})

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      task.ID,
	})
}

// AssignTaskUsers handles POST /api/projects/:id/tasks/:taskId/assignees
func AssignTaskUsers(c *gin.Context) {
	userID := c.GetString("user_id")

	project := resolveProject(c)
	if project == nil {
		return
	}

	db := database.GetDB()
	task, err := store.GetTask(db, project.ID, c.Param("taskId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req AssignUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.AssignUsers(db, task, req.UserIDs, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign users"})
		return
	}

	tasks := []models.Task{*task}
	enrichAssignees(tasks)

	c.JSON(http.StatusOK, tasks[0])
}

// UnassignTaskUser handles DELETE /api/projects/:id/tasks/:taskId/assignees/:userId
func UnassignTaskUser(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	db := database.GetDB()
	task, err := store.GetTask(db, project.ID, c.Param("taskId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := store.UnassignUser(db, task, c.Param("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unassign user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unassigned"})
}

// GetBoard handles GET /api/projects/:id/board
// Returns ordered columns with their tasks, the full board snapshot the
// frontend refetches to reconcile after failed optimistic updates.
func GetBoard(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	columns, err := store.BoardColumns(database.GetDB(), project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board"})
		return
	}

	for i := range columns {
		enrichAssignees(columns[i].Tasks)
	}

	c.JSON(http.StatusOK, gin.H{
		"columns": columns,
		"count":   len(columns),
	})
}
