// internal/handlers/application.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inccombinator/platform-backend/internal/i18n"
	"github.com/inccombinator/platform-backend/internal/models"
	"github.com/inccombinator/platform-backend/internal/services"
	"github.com/inccombinator/platform-backend/internal/utils"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
	authService        *services.AuthService
	storageService     *services.StorageService
}

func NewApplicationHandler(applicationService *services.ApplicationService, authService *services.AuthService, storageService *services.StorageService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		authService:        authService,
		storageService:     storageService,
	}
}

// POST /applications/:type
func (h *ApplicationHandler) Submit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	appType, err := models.ParseApplicationType(c.Param("type"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyApplicationInvalidType), nil)
		return
	}

	req := services.NewRequest(appType)
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	app, err := h.applicationService.Submit(appType, req)
	if err != nil {
		logrus.WithError(err).WithField("application_type", appType).Error("Failed to submit application")
		utils.InternalErrorResponse(c, "Failed to submit application")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyApplicationSubmitted),
		"application": app,
	})
}

// GET /applications/mine
// Returns every application submitted with the authenticated user's email,
// newest first, across all application types.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.KeyUserNotFound)
		return
	}

	apps, err := h.applicationService.ListByEmail(user.Email)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch applications")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"applications": apps,
		"count":        len(apps),
	})
}

// POST /applications/pitch-deck
func (h *ApplicationHandler) UploadPitchDeck(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "file"), err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, services.PitchDeckOptions())
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadFailed), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyUploadSuccess),
		"file_url":    result.URL,
		"file_key":    result.Key,
		"uploaded_at": time.Now().UTC(),
	})
}
