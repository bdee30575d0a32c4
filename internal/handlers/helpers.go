package handlers

import (
	"errors"
	"net/http"

	"project-board-api/internal/apperrors"
	"project-board-api/internal/database"
	"project-board-api/internal/models"
	"project-board-api/internal/store"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP statuses: not-found 404,
// conflict 409, validation 400, anything else 500.
func respondError(c *gin.Context, err error) {
	var nf *apperrors.NotFoundError
	var cf *apperrors.ConflictError
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	case errors.As(err, &cf):
		c.JSON(http.StatusConflict, gin.H{"error": cf.Error()})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// resolveProject loads the project named in the URL and enforces visibility
// for client-role callers: a client resolving someone else's project gets a
// 404, not a 403, so project ids don't leak. Returns nil after writing the
// response when resolution fails.
func resolveProject(c *gin.Context) *models.Project {
	projectID := c.Param("id")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project ID is required"})
		return nil
	}
	project, err := store.GetProject(database.GetDB(), projectID)
	if err != nil {
		respondError(c, err)
		return nil
	}
	if models.UserRole(c.GetString("role")) == models.RoleClient && project.ClientID != c.GetString("user_id") {
		respondError(c, apperrors.NotFound("project", projectID))
		return nil
	}
	return project
}

// enrichAssignees fills the response-only Assignees field on each task from
// the task_assignments join.
func enrichAssignees(tasks []models.Task) {
	db := database.GetDB()
	for i := range tasks {
		users, err := store.AssignedUsers(db, tasks[i].ID)
		if err != nil {
			continue
		}
		assignees := make([]models.Assignee, 0, len(users))
		for _, u := range users {
			name := u.Name
			if name == "" {
				name = u.Username
			}
			assignees = append(assignees, models.Assignee{ID: u.ID, Name: name})
		}
		tasks[i].Assignees = assignees
	}
}
