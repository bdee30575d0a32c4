package store

import (
	"errors"
	"strings"
	"time"

	"project-board-api/internal/apperrors"
	"project-board-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProjectParams are the caller-supplied fields for a new project.
type CreateProjectParams struct {
	Title            string
	Description      string
	ClientID         string
	ProjectManagerID string
	Deadline         *time.Time
}

// CreateProject inserts a project owned by ownerID and makes the owner a
// member. Default workflow statuses are seeded separately by the caller.
func CreateProject(db *gorm.DB, ownerID string, params CreateProjectParams) (*models.Project, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, apperrors.Invalid("title", "title is required")
	}
	project := models.Project{
		ID:               uuid.NewString(),
		Title:            params.Title,
		Description:      params.Description,
		OwnerID:          ownerID,
		ClientID:         params.ClientID,
		ProjectManagerID: params.ProjectManagerID,
		Deadline:         params.Deadline,
		Status:           models.ProjectActive,
	}
	if err := db.Create(&project).Error; err != nil {
		return nil, err
	}
	if err := AddMember(db, project.ID, ownerID); err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	return &project, nil
}

// GetProject loads a project by id.
func GetProject(db *gorm.DB, projectID string) (*models.Project, error) {
	var project models.Project
	if err := db.Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("project", projectID)
		}
		return nil, err
	}
	return &project, nil
}

// VisibleProjects lists the projects the user may see: admins and project
// managers see everything, clients only projects where they are the client,
// everyone else the projects they own or are a member of.
func VisibleProjects(db *gorm.DB, user *models.User) ([]models.Project, error) {
	query := db.Model(&models.Project{})
	switch user.Role {
	case models.RoleAdmin, models.RoleProjectManager:
		// unrestricted
	case models.RoleClient:
		query = query.Where("client_id = ?", user.ID)
	default:
		query = query.Where(
			"owner_id = ? OR id IN (SELECT project_id FROM project_members WHERE user_id = ?)",
			user.ID, user.ID,
		)
	}
	var projects []models.Project
	if err := query.Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// DeleteProject removes a project and everything scoped to it: assignments,
// comments, tasks, statuses and memberships. The cascade is application
// enforced, not a database constraint.
func DeleteProject(db *gorm.DB, project *models.Project) error {
	taskIDs := db.Model(&models.Task{}).Where("project_id = ?", project.ID).Select("id")
	if err := db.Where("task_id IN (?)", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
		return err
	}
	if err := db.Where("task_id IN (?)", taskIDs).Delete(&models.TaskComment{}).Error; err != nil {
		return err
	}
	if err := db.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
		return err
	}
	if err := db.Where("project_id = ?", project.ID).Delete(&models.WorkflowStatus{}).Error; err != nil {
		return err
	}
	if err := db.Where("project_id = ?", project.ID).Delete(&models.ProjectMember{}).Error; err != nil {
		return err
	}
	statusCache.Delete(project.ID)
	return db.Delete(project).Error
}

// AddMember joins a user to a project, copying the user's role onto the
// membership row. Adding an existing member is a no-op.
func AddMember(db *gorm.DB, projectID, userID string) error {
	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user", userID)
		}
		return err
	}
	var count int64
	if err := db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      user.Role,
		JoinedAt:  time.Now(),
	}
	return db.Create(&member).Error
}

// RemoveMember removes a user from a project.
func RemoveMember(db *gorm.DB, projectID, userID string) error {
	return db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// Members lists a project's memberships.
func Members(db *gorm.DB, projectID string) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := db.Where("project_id = ?", projectID).Order("joined_at asc").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// DeveloperIDs returns the user ids of all developer members of a project.
// These back the default-assignment policy for new tasks.
func DeveloperIDs(db *gorm.DB, projectID string) ([]string, error) {
	var ids []string
	if err := db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND role = ?", projectID, models.RoleDeveloper).
		Order("joined_at asc").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
