// internal/handlers/admin.go
package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inccombinator/platform-backend/internal/i18n"
	"github.com/inccombinator/platform-backend/internal/models"
	"github.com/inccombinator/platform-backend/internal/services"
	"github.com/inccombinator/platform-backend/internal/utils"
)

type AdminHandler struct {
	reviewService       *services.ReviewService
	applicationService  *services.ApplicationService
	notificationService *services.NotificationService
	adminService        *services.AdminService
}

func NewAdminHandler(reviewService *services.ReviewService, applicationService *services.ApplicationService, notificationService *services.NotificationService, adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		reviewService:       reviewService,
		applicationService:  applicationService,
		notificationService: notificationService,
		adminService:        adminService,
	}
}

// UpdateStatusRequest carries one review decision. SendEmail defaults to true
// when omitted.
type UpdateStatusRequest struct {
	Status    string `json:"status" validate:"required"`
	Notes     string `json:"notes"`
	SendEmail *bool  `json:"send_email"`
}

// statusUpdateEnvelope is the body of the untyped status endpoint. The
// application type is optional; without it the id is resolved by probing every
// application store in a fixed order.
type statusUpdateEnvelope struct {
	ApplicationID   string `json:"application_id" validate:"required"`
	ApplicationType string `json:"application_type"`
	Status          string `json:"status" validate:"required"`
	Notes           string `json:"notes"`
	SendEmail       *bool  `json:"send_email"`
}

// GET /admin/applications/:type
func (h *AdminHandler) ListApplications(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	appType, err := models.ParseApplicationType(c.Param("type"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyApplicationInvalidType), nil)
		return
	}

	filter := services.ApplicationFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if status := c.Query("status"); status != "" {
		s := models.ApplicationStatus(status)
		filter.Status = &s
	}
	if after := c.Query("created_after"); after != "" {
		if t, err := time.Parse(time.RFC3339, after); err == nil {
			filter.CreatedAfter = &t
		}
	}
	if before := c.Query("created_before"); before != "" {
		if t, err := time.Parse(time.RFC3339, before); err == nil {
			filter.CreatedBefore = &t
		}
	}

	apps, total, err := h.applicationService.List(appType, filter)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch applications")
		return
	}

	result := utils.CreatePaginationResult(apps, total, filter.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /admin/applications/:type/:id
func (h *AdminHandler) GetApplication(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	appType, err := models.ParseApplicationType(c.Param("type"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyApplicationInvalidType), nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "application ID"), nil)
		return
	}

	app, err := h.reviewService.GetApplication(appType, id)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			utils.NotFoundResponse(c, i18n.KeyApplicationNotFound)
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch application")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"application": app,
	})
}

// PUT /admin/applications/:type/:id/status
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	appType, err := models.ParseApplicationType(c.Param("type"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyApplicationInvalidType), nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "application ID"), nil)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	h.applyStatusUpdate(c, &appType, id, req.Status, req.Notes, req.SendEmail)
}

// POST /admin/applications/status
//
// Compatibility entry point that takes the application id in the body. The
// application type is optional here.
func (h *AdminHandler) UpdateStatusByID(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req statusUpdateEnvelope
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	id, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "application ID"), nil)
		return
	}

	var appType *models.ApplicationType
	if req.ApplicationType != "" {
		parsed, err := models.ParseApplicationType(req.ApplicationType)
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyApplicationInvalidType), nil)
			return
		}
		appType = &parsed
	}

	h.applyStatusUpdate(c, appType, id, req.Status, req.Notes, req.SendEmail)
}

// applyStatusUpdate performs the two independent steps of a review decision:
// the database write (status, notes, reviewer, activity log) and then the
// notification email. A failed or unconfigured email never rolls back the
// write; the response stays successful and carries the email outcome.
func (h *AdminHandler) applyStatusUpdate(c *gin.Context, appType *models.ApplicationType, id uuid.UUID, status, notes string, sendEmail *bool) {
	lang := utils.GetLangFromContext(c)

	reviewerIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}
	reviewerID, err := uuid.Parse(reviewerIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	app, err := h.reviewService.UpdateStatus(appType, id, models.ApplicationStatus(status), notes, reviewerID)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			utils.NotFoundResponse(c, i18n.KeyApplicationNotFound)
			return
		}
		logrus.WithError(err).WithField("application_id", id).Error("Failed to update application status")
		utils.InternalErrorResponse(c, "Failed to update application status")
		return
	}

	message := i18n.T(lang, i18n.KeyApplicationStatusUpdated)
	response := gin.H{
		"application": app,
	}

	if sendEmail == nil || *sendEmail {
		result, err := h.notificationService.SendStatusEmail(&services.StatusEmail{
			Recipient:       app.ApplicantEmail(),
			RecipientName:   app.ApplicantName(),
			ApplicationType: app.Type(),
			Status:          app.Review().Status,
			Notes:           notes,
			Extra:           app.EmailData(),
		})
		switch {
		case err != nil:
			// Covers config.ErrEmailNotConfigured and template failures alike.
			message = i18n.T(lang, i18n.KeyEmailNotSent)
			response["email"] = gin.H{"success": false, "error": err.Error()}
		case !result.Success:
			message = i18n.T(lang, i18n.KeyEmailNotSent)
			response["email"] = result
		default:
			response["email"] = result
		}
	}

	response["message"] = message
	utils.SuccessResponse(c, response)
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch dashboard stats")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /admin/activity
func (h *AdminHandler) GetActivityLog(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	entries, total, err := h.adminService.GetActivityLog(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch activity log")
		return
	}

	result := utils.CreatePaginationResult(entries, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /admin/emails
func (h *AdminHandler) GetEmailLog(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	entries, total, err := h.adminService.GetEmailLog(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch email log")
		return
	}

	result := utils.CreatePaginationResult(entries, total, params)
	utils.PaginatedResponse(c, result)
}
