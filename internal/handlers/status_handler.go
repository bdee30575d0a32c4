package handlers

import (
	"net/http"

	"project-board-api/internal/database"
	"project-board-api/internal/realtime"
	"project-board-api/internal/store"

	"github.com/gin-gonic/gin"
)

// CreateStatusRequest represents the request payload for creating a workflow status
type CreateStatusRequest struct {
	Name  string `json:"name" binding:"required"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
	Order *int   `json:"order"`
}

// UpdateStatusRequest represents the request payload for updating a workflow status
type UpdateStatusRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Order       *int    `json:"order"`
	IsDefault   *bool   `json:"is_default"`
	IsCompleted *bool   `json:"is_completed"`
}

// GetWorkflowStatuses handles GET /api/projects/:id/workflow-statuses
// Returns the project's board columns in left-to-right order.
func GetWorkflowStatuses(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	statuses, err := store.OrderedStatuses(database.GetDB(), project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch workflow statuses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statuses": statuses,
		"count":    len(statuses),
	})
}

// CreateWorkflowStatus handles POST /api/projects/:id/workflow-statuses
func CreateWorkflowStatus(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	var req CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := store.CreateStatus(database.GetDB(), project.ID, store.CreateStatusParams{
		Name:  req.Name,
		Slug:  req.Slug,
		Color: req.Color,
		Order: req.Order,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	realtime.GetHub().BroadcastEvent(project.ID, "status_created", map[string]any{"statusId": status.ID})

	c.JSON(http.StatusCreated, status)
}

// SeedDefaultStatuses handles POST /api/projects/:id/workflow-statuses/default
// Seeds the six canonical columns for a project with none; a no-op otherwise.
func SeedDefaultStatuses(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	statuses, err := store.CreateDefaultStatuses(database.GetDB(), project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed default statuses"})
		return
	}
	if statuses == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Project already has workflow statuses"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"statuses": statuses,
		"count":    len(statuses),
	})
}

// UpdateWorkflowStatus handles PUT /api/projects/:id/workflow-statuses/:statusId
func UpdateWorkflowStatus(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	db := database.GetDB()
	status, err := store.ResolveStatus(db, project.ID, c.Param("statusId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = store.UpdateStatus(db, status, store.UpdateStatusParams{
		Name:        req.Name,
		Color:       req.Color,
		Order:       req.Order,
		IsDefault:   req.IsDefault,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// DeleteWorkflowStatus handles DELETE /api/projects/:id/workflow-statuses/:statusId
// Rejected with 409 while any task still references the status.
func DeleteWorkflowStatus(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	db := database.GetDB()
	status, err := store.ResolveStatus(db, project.ID, c.Param("statusId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := store.DeleteStatus(db, status); err != nil {
		respondError(c, err)
		return
	}

	realtime.GetHub().BroadcastEvent(project.ID, "status_deleted", map[string]any{"statusId": status.ID})

	c.JSON(http.StatusOK, gin.H{
		"message": "Workflow status deleted successfully",
		"id":      status.ID,
	})
}
