package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"project-board-api/internal/apperrors"
	"project-board-api/internal/cache"
	"project-board-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// statusCache holds per-project ordered column lists. Columns change rarely
// and board reads are hot; any write to a project's statuses drops its entry.
var statusCache = cache.New[string, []models.WorkflowStatus]()

const statusCacheTTL = 30 * time.Second

// defaultStatuses are the six canonical board columns seeded for a new
// project, in column order.
var defaultStatuses = []struct {
	Name  string
	Color string
}{
	{"New Task", "#6B7280"},
	{"Requirements Ready", "#8B5CF6"},
	{"In Progress", "#3B82F6"},
	{"Testing", "#F59E0B"},
	{"Ready for Release", "#06B6D4"},
	{"Completed", "#22C55E"},
}

// Slugify derives a URL-safe slug from a status name.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// CreateDefaultStatuses seeds the canonical six statuses for a project that
// has none yet, with order 0..5, is_default on the first and is_completed on
// the last. It is a no-op for projects that already have statuses.
func CreateDefaultStatuses(db *gorm.DB, projectID string) ([]models.WorkflowStatus, error) {
	var count int64
	if err := db.Model(&models.WorkflowStatus{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	statuses := make([]models.WorkflowStatus, 0, len(defaultStatuses))
	for i, ds := range defaultStatuses {
		statuses = append(statuses, models.WorkflowStatus{
			ID:          uuid.NewString(),
			ProjectID:   projectID,
			Name:        ds.Name,
			Slug:        Slugify(ds.Name),
			Color:       ds.Color,
			Order:       i,
			IsDefault:   i == 0,
			IsCompleted: i == len(defaultStatuses)-1,
		})
	}
	if err := db.Create(&statuses).Error; err != nil {
		return nil, err
	}
	statusCache.Delete(projectID)
	return statuses, nil
}

// CreateStatusParams are the caller-supplied fields for a new status.
type CreateStatusParams struct {
	Name  string
	Slug  string
	Color string
	Order *int
}

// CreateStatus inserts a new status scoped to the project. The slug is
// derived from the name when not supplied; a missing order appends the
// column to the right of the board.
func CreateStatus(db *gorm.DB, projectID string, params CreateStatusParams) (*models.WorkflowStatus, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, apperrors.Invalid("name", "name is required")
	}

	order := 0
	if params.Order != nil {
		order = *params.Order
	} else {
		var maxOrder sql.NullInt64
		if err := db.Model(&models.WorkflowStatus{}).
			Where("project_id = ?", projectID).
			Select("MAX(position)").
			Scan(&maxOrder).Error; err != nil {
			return nil, err
		}
		if maxOrder.Valid {
			order = int(maxOrder.Int64) + 1
		}
	}

	slug := params.Slug
	if slug == "" {
		slug = Slugify(params.Name)
	}

	status := models.WorkflowStatus{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      params.Name,
		Slug:      slug,
		Color:     params.Color,
		Order:     order,
	}
	if err := db.Create(&status).Error; err != nil {
		return nil, err
	}
	statusCache.Delete(projectID)
	return &status, nil
}

// UpdateStatusParams are the optional fields for a status update.
type UpdateStatusParams struct {
	Name        *string
	Color       *string
	Order       *int
	IsDefault   *bool
	IsCompleted *bool
}

// UpdateStatus applies the provided fields to the status.
func UpdateStatus(db *gorm.DB, status *models.WorkflowStatus, params UpdateStatusParams) error {
	if params.Name != nil {
		if strings.TrimSpace(*params.Name) == "" {
			return apperrors.Invalid("name", "name is required")
		}
		status.Name = *params.Name
		status.Slug = Slugify(*params.Name)
	}
	if params.Color != nil {
		status.Color = *params.Color
	}
	if params.Order != nil {
		status.Order = *params.Order
	}
	if params.IsDefault != nil {
		status.IsDefault = *params.IsDefault
	}
	if params.IsCompleted != nil {
		status.IsCompleted = *params.IsCompleted
	}
	if err := db.Save(status).Error; err != nil {
		return err
	}
	statusCache.Delete(status.ProjectID)
	return nil
}

// DeleteStatus deletes a status that has no tasks attached. Deleting a
// status that still has referencing tasks fails with a ConflictError; the
// caller must migrate tasks first.
func DeleteStatus(db *gorm.DB, status *models.WorkflowStatus) error {
	var count int64
	if err := db.Model(&models.Task{}).Where("workflow_status_id = ?", status.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.Conflict("cannot delete status with %d task(s); move or delete tasks first", count)
	}
	if err := db.Delete(status).Error; err != nil {
		return err
	}
	statusCache.Delete(status.ProjectID)
	return nil
}

// OrderedStatuses returns the project's statuses sorted ascending by order.
// This ordering is the sole authority for left-to-right column placement.
func OrderedStatuses(db *gorm.DB, projectID string) ([]models.WorkflowStatus, error) {
	if cached, ok := statusCache.Get(projectID); ok {
		return cached, nil
	}
	var statuses []models.WorkflowStatus
	if err := db.Where("project_id = ?", projectID).Order("position asc").Find(&statuses).Error; err != nil {
		return nil, err
	}
	statusCache.Set(projectID, statuses, statusCacheTTL)
	return statuses, nil
}

// ResolveStatus loads a status by id and verifies it belongs to the given
// project. A status that exists under a different project resolves as not
// found, so ids cannot leak across projects.
func ResolveStatus(db *gorm.DB, projectID, statusID string) (*models.WorkflowStatus, error) {
	var status models.WorkflowStatus
	if err := db.Where("id = ?", statusID).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("workflow status", statusID)
		}
		return nil, err
	}
	if status.ProjectID != projectID {
		return nil, apperrors.NotFound("workflow status", statusID)
	}
	return &status, nil
}
