// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/inccombinator/platform-backend/internal/database"
	"github.com/inccombinator/platform-backend/internal/models"
)

// ErrApplicationNotFound is returned when an application id matches no store.
var ErrApplicationNotFound = errors.New("application not found")

// ReviewService implements the admin status-update workflow: locate the
// application, overwrite its review fields, and append one activity log entry.
// There is no transition validation (any status may overwrite any other) and
// no optimistic locking: concurrent reviewers race and the last write wins.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// GetApplication loads one application by type and id.
func (s *ReviewService) GetApplication(appType models.ApplicationType, id uuid.UUID) (models.Application, error) {
	app := models.NewApplication(appType)
	if app == nil {
		return nil, fmt.Errorf("unknown application type %q", appType)
	}

	if err := s.db.First(app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return app, nil
}

// ResolveApplication probes each store in the fixed order and returns the
// first row whose primary key matches. Callers that know the type should use
// GetApplication instead: the probe exists for requests that arrive without a
// type hint, and it silently picks the first table on the (pathological)
// chance of an id collision across stores.
func (s *ReviewService) ResolveApplication(id uuid.UUID) (models.Application, error) {
	for _, appType := range models.ApplicationTypes {
		app, err := s.GetApplication(appType, id)
		if err == nil {
			return app, nil
		}
		if !errors.Is(err, ErrApplicationNotFound) {
			return nil, err
		}
	}
	return nil, ErrApplicationNotFound
}

// UpdateStatus writes the new status, notes and reviewer onto the application
// and appends the activity log entry in the same transaction. appType may be
// nil, in which case the id is resolved by probing. The new status is stored
// verbatim, even when it is not one of the four known values.
func (s *ReviewService) UpdateStatus(appType *models.ApplicationType, id uuid.UUID, newStatus models.ApplicationStatus, notes string, reviewerID uuid.UUID) (models.Application, error) {
	var app models.Application
	var err error

	if appType != nil {
		app, err = s.GetApplication(*appType, id)
	} else {
		app, err = s.ResolveApplication(id)
	}
	if err != nil {
		return nil, err
	}

	oldStatus := app.Review().Status
	now := time.Now()

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":      newStatus,
			"admin_notes": notes,
			"reviewed_by": reviewerID,
			"reviewed_at": now,
		}
		if err := tx.Model(app).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		entry := &models.ActivityLog{
			AdminID:         reviewerID,
			ApplicationID:   id,
			ApplicationType: app.Type(),
			OldStatus:       oldStatus,
			NewStatus:       newStatus,
			Notes:           notes,
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to append activity log: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	review := app.Review()
	review.Status = newStatus
	review.AdminNotes = notes
	review.ReviewedBy = &reviewerID
	review.ReviewedAt = &now

	logrus.WithFields(logrus.Fields{
		"application_id":   id,
		"application_type": app.Type(),
		"old_status":       oldStatus,
		"new_status":       newStatus,
		"reviewed_by":      reviewerID,
	}).Info("Application status updated")

	return app, nil
}
