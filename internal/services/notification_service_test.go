// internal/services/notification_service_test.go
package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inccombinator/platform-backend/internal/config"
	"github.com/inccombinator/platform-backend/internal/models"
)

type capturedEmail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type NotificationServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	provider *httptest.Server

	captured   []capturedEmail
	authHeader string
	statusCode int
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(&models.EmailLog{}))
	suite.db = db

	suite.captured = nil
	suite.statusCode = http.StatusOK
	suite.provider = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.authHeader = r.Header.Get("Authorization")

		var email capturedEmail
		suite.Require().NoError(json.NewDecoder(r.Body).Decode(&email))
		suite.captured = append(suite.captured, email)

		w.WriteHeader(suite.statusCode)
	}))
}

func (suite *NotificationServiceTestSuite) TearDownTest() {
	suite.provider.Close()
}

func (suite *NotificationServiceTestSuite) newService() *NotificationService {
	cfg := &config.Config{
		Email: config.EmailConfig{
			APIKey:    "test-api-key",
			BaseURL:   suite.provider.URL,
			FromEmail: "noreply@example.com",
			FromName:  "Inc Combinator",
		},
	}
	return NewNotificationService(suite.db, cfg)
}

func (suite *NotificationServiceTestSuite) TestApprovedEmail() {
	service := suite.newService()

	result, err := service.SendStatusEmail(&StatusEmail{
		Recipient:       "ada@example.com",
		RecipientName:   "Ada Lovelace",
		ApplicationType: models.ApplicationTypeIncubation,
		Status:          models.ApplicationStatusApproved,
		Notes:           "Strong team",
	})
	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal("ada@example.com", result.Recipient)
	suite.NotNil(result.SentAt)

	suite.Equal("Bearer test-api-key", suite.authHeader)
	suite.Require().Len(suite.captured, 1)
	email := suite.captured[0]
	suite.Equal([]string{"ada@example.com"}, email.To)
	suite.Equal("Inc Combinator <noreply@example.com>", email.From)
	suite.Contains(email.Subject, "APPROVED")
	suite.Contains(email.HTML, "Congratulations, Ada Lovelace!")
	suite.Contains(email.HTML, "Next steps:")
	suite.Contains(email.HTML, "Strong team")

	var logs []models.EmailLog
	suite.Require().NoError(suite.db.Find(&logs).Error)
	suite.Require().Len(logs, 1)
	suite.Equal("ada@example.com", logs[0].Recipient)
	suite.Equal("status_update", logs[0].EmailType)
	suite.Equal(models.EmailStatusSent, logs[0].Status)
	suite.NotNil(logs[0].SentAt)
}

func (suite *NotificationServiceTestSuite) TestRejectedEmailOmitsNextSteps() {
	service := suite.newService()

	result, err := service.SendStatusEmail(&StatusEmail{
		Recipient:       "grace@example.com",
		RecipientName:   "Grace Hopper",
		ApplicationType: models.ApplicationTypeHackathon,
		Status:          models.ApplicationStatusRejected,
	})
	suite.Require().NoError(err)
	suite.True(result.Success)

	suite.Require().Len(suite.captured, 1)
	email := suite.captured[0]
	suite.Contains(email.Subject, "REJECTED")
	suite.Contains(email.HTML, "<strong>REJECTED</strong>")
	suite.NotContains(email.HTML, "Next steps:")
	suite.NotContains(email.HTML, "Reviewer notes")
}

func (suite *NotificationServiceTestSuite) TestUnknownStatusUsesGenericCopy() {
	service := suite.newService()

	result, err := service.SendStatusEmail(&StatusEmail{
		Recipient:       "alan@example.com",
		RecipientName:   "Alan Turing",
		ApplicationType: models.ApplicationTypeProgram,
		Status:          models.ApplicationStatus("on_hold"),
	})
	suite.Require().NoError(err)
	suite.True(result.Success)

	suite.Require().Len(suite.captured, 1)
	email := suite.captured[0]
	suite.Contains(email.Subject, "status was updated")
	suite.Contains(email.HTML, "<strong>ON_HOLD</strong>")
}

func (suite *NotificationServiceTestSuite) TestMissingConfiguration() {
	service := NewNotificationService(suite.db, &config.Config{})

	result, err := service.SendStatusEmail(&StatusEmail{
		Recipient:       "ada@example.com",
		RecipientName:   "Ada Lovelace",
		ApplicationType: models.ApplicationTypeIncubation,
		Status:          models.ApplicationStatusApproved,
	})
	suite.Require().ErrorIs(err, config.ErrEmailNotConfigured)
	suite.Nil(result)
	suite.Empty(suite.captured)

	// No delivery attempt, no log entry.
	var count int64
	suite.Require().NoError(suite.db.Model(&models.EmailLog{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *NotificationServiceTestSuite) TestProviderFailureIsNotAnError() {
	suite.statusCode = http.StatusInternalServerError
	service := suite.newService()

	result, err := service.SendStatusEmail(&StatusEmail{
		Recipient:       "ada@example.com",
		RecipientName:   "Ada Lovelace",
		ApplicationType: models.ApplicationTypeIncubation,
		Status:          models.ApplicationStatusApproved,
	})
	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Contains(result.Error, "500")
	suite.Nil(result.SentAt)

	var logs []models.EmailLog
	suite.Require().NoError(suite.db.Find(&logs).Error)
	suite.Require().Len(logs, 1)
	suite.Equal(models.EmailStatusFailed, logs[0].Status)
	suite.NotEmpty(logs[0].ErrorMessage)
}

func TestNotificationServiceSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
