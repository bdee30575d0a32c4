package handlers

import (
	"errors"
	"net/http"

	"project-board-api/internal/database"
	"project-board-api/internal/models"
	"project-board-api/internal/realtime"
	"project-board-api/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PostCommentRequest represents the request payload for posting a comment.
// Mentions are the user ids the frontend extracted from @[Name](userId)
// markers in the content; the server stores them as given.
type PostCommentRequest struct {
	Content  string   `json:"content" binding:"required"`
	ParentID *string  `json:"parentId"`
	Mentions []string `json:"mentions"`
}

// resolveTask loads the task named in the URL for comment routes, which are
// task-scoped rather than project-scoped. Client-role callers resolving a
// task outside their own project get a 404, same as resolveProject, so task
// ids don't leak.
func resolveTask(c *gin.Context) *models.Task {
	taskID := c.Param("id")
	var task models.Task
	if err := database.GetDB().Where("id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return nil
	}
	if models.UserRole(c.GetString("role")) == models.RoleClient {
		project, err := store.GetProject(database.GetDB(), task.ProjectID)
		if err != nil || project.ClientID != c.GetString("user_id") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return nil
		}
	}
	return &task
}

// GetComments handles GET /api/tasks/:id/comments
// Top-level comments ascending by creation time, replies nested.
func GetComments(c *gin.Context) {
	task := resolveTask(c)
	if task == nil {
		return
	}

	comments, err := store.ListComments(database.GetDB(), task.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"count":    len(comments),
	})
}

// PostComment handles POST /api/tasks/:id/comments
func PostComment(c *gin.Context) {
	userID := c.GetString("user_id")

	task := resolveTask(c)
	if task == nil {
		return
	}

	var req PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := store.PostComment(database.GetDB(), task, userID, req.Content, req.ParentID, req.Mentions)
	if err != nil {
		respondError(c, err)
		return
	}

	realtime.GetHub().BroadcastEvent(task.ProjectID, "comment_posted", map[string]any{
		"taskId":    task.ID,
		"commentId": comment.ID,
	})

	c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /api/tasks/:id/comments/:commentId
// Deleting a top-level comment also deletes its replies.
func DeleteComment(c *gin.Context) {
	task := resolveTask(c)
	if task == nil {
		return
	}

	db := database.GetDB()
	comment, err := store.GetComment(db, task.ID, c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := store.DeleteComment(db, comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
		"id":      comment.ID,
	})
}
