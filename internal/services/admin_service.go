// internal/services/admin_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/inccombinator/platform-backend/internal/models"
	"github.com/inccombinator/platform-backend/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalApplications    int64            `json:"total_applications"`
	PendingApplications  int64            `json:"pending_applications"`
	ApprovedApplications int64            `json:"approved_applications"`
	RejectedApplications int64            `json:"rejected_applications"`
	ApplicationsByType   map[string]int64 `json:"applications_by_type"`
	NewThisMonth         int64            `json:"new_this_month"`
	TotalUsers           int64            `json:"total_users"`
	EmailsSent           int64            `json:"emails_sent"`
	EmailsFailed         int64            `json:"emails_failed"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Dashboard Statistics
func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{
		ApplicationsByType: make(map[string]int64),
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for _, appType := range models.ApplicationTypes {
		model := models.NewApplication(appType)

		var count int64
		s.db.Model(model).Count(&count)
		stats.ApplicationsByType[string(appType)] = count
		stats.TotalApplications += count

		var pending, approved, rejected, newThisMonth int64
		s.db.Model(model).Where("status = ?", models.ApplicationStatusPending).Count(&pending)
		s.db.Model(model).Where("status = ?", models.ApplicationStatusApproved).Count(&approved)
		s.db.Model(model).Where("status = ?", models.ApplicationStatusRejected).Count(&rejected)
		s.db.Model(model).Where("created_at >= ?", monthStart).Count(&newThisMonth)

		stats.PendingApplications += pending
		stats.ApprovedApplications += approved
		stats.RejectedApplications += rejected
		stats.NewThisMonth += newThisMonth
	}

	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.EmailLog{}).Where("status = ?", models.EmailStatusSent).Count(&stats.EmailsSent)
	s.db.Model(&models.EmailLog{}).Where("status = ?", models.EmailStatusFailed).Count(&stats.EmailsFailed)

	return stats, nil
}

// GetActivityLog returns one page of the status-change audit trail.
func (s *AdminService) GetActivityLog(params utils.PaginationParams) ([]models.ActivityLog, int64, error) {
	query := s.db.Model(&models.ActivityLog{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count activity log entries: %w", err)
	}

	allowedSortFields := []string{"created_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var entries []models.ActivityLog
	if err := query.Preload("Admin").Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch activity log: %w", err)
	}

	return entries, total, nil
}

// GetEmailLog returns one page of dispatch attempts.
func (s *AdminService) GetEmailLog(params utils.PaginationParams) ([]models.EmailLog, int64, error) {
	query := s.db.Model(&models.EmailLog{})

	if params.Search != "" {
		query = query.Where("recipient ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count email log entries: %w", err)
	}

	allowedSortFields := []string{"created_at", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var entries []models.EmailLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch email log: %w", err)
	}

	return entries, total, nil
}
