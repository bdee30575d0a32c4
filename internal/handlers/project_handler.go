package handlers

import (
	"errors"
	"net/http"
	"time"

	"project-board-api/internal/database"
	"project-board-api/internal/logutils"
	"project-board-api/internal/models"
	"project-board-api/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProjectRequest represents the request payload for creating a project
type CreateProjectRequest struct {
	Title            string     `json:"title" binding:"required"`
	Description      string     `json:"description"`
	ClientID         string     `json:"clientId"`
	ProjectManagerID string     `json:"projectManagerId"`
	Deadline         *time.Time `json:"deadline"`
}

// UpdateProjectRequest represents the request payload for updating a project
type UpdateProjectRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	ClientID    *string               `json:"clientId"`
	Deadline    *time.Time            `json:"deadline"`
	Status      *models.ProjectStatus `json:"status"`
}

// AddMemberRequest represents the request payload for adding a project member
type AddMemberRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// GetProjects handles GET /api/projects
// Lists the projects visible to the authenticated user.
func GetProjects(c *gin.Context) {
	userID := c.GetString("user_id")
	var user models.User
	if err := database.GetDB().Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return
	}

	projects, err := store.VisibleProjects(database.GetDB(), &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProject handles GET /api/projects/:id
func GetProject(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	members, err := store.Members(database.GetDB(), project.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project": project,
		"members": members,
	})
}

// CreateProject handles POST /api/projects
// Creates a project and seeds its six default workflow statuses. Seeding is
// not transactional with creation; a seeding failure leaves a project with
// no columns, which the statuses endpoint can repair.
func CreateProject(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()
	project, err := store.CreateProject(db, userID, store.CreateProjectParams{
		Title:            req.Title,
		Description:      req.Description,
		ClientID:         req.ClientID,
		ProjectManagerID: req.ProjectManagerID,
		Deadline:         req.Deadline,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := store.CreateDefaultStatuses(db, project.ID); err != nil {
		logutils.Log.WithField("project", project.ID).Warn("failed to seed default statuses: ", err)
	}

	c.JSON(http.StatusCreated, project)
}

// UpdateProject handles PUT /api/projects/:id
func UpdateProject(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.ClientID != nil {
		project.ClientID = *req.ClientID
	}
	if req.Deadline != nil {
		project.Deadline = req.Deadline
	}
	if req.Status != nil {
		project.Status = *req.Status
	}

	if err := database.GetDB().Save(project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/:id
// Cascades tasks, statuses, assignments, comments and memberships.
func DeleteProject(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	if err := store.DeleteProject(database.GetDB(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
		"id":      project.ID,
	})
}

// AddProjectMember handles POST /api/projects/:id/members
func AddProjectMember(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := store.AddMember(database.GetDB(), project.ID, req.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Member added"})
}

// RemoveProjectMember handles DELETE /api/projects/:id/members/:userId
func RemoveProjectMember(c *gin.Context) {
	project := resolveProject(c)
	if project == nil {
		return
	}

	if err := store.RemoveMember(database.GetDB(), project.ID, c.Param("userId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
