// internal/services/review_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inccombinator/platform-backend/internal/models"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ReviewService
	admin   *models.User
}

func (suite *ReviewServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.IncubationApplication{},
		&models.InvestmentApplication{},
		&models.HackathonApplication{},
		&models.PartnershipApplication{},
		&models.MentorApplication{},
		&models.ProgramApplication{},
		&models.ActivityLog{},
		&models.EmailLog{},
	)
	suite.Require().NoError(err)

	suite.db = db
	suite.service = NewReviewService(db)

	admin := &models.User{
		FullName: "Review Admin",
		Email:    "admin@example.com",
		Role:     models.UserRoleAdmin,
		Status:   models.UserStatusActive,
	}
	suite.Require().NoError(admin.SetPassword("AdminPass123"))
	suite.Require().NoError(db.Create(admin).Error)
	suite.admin = admin
}

func (suite *ReviewServiceTestSuite) seedIncubation() *models.IncubationApplication {
	app := &models.IncubationApplication{
		FounderName:  "Ada Lovelace",
		Email:        "ada@example.com",
		StartupName:  "Analytical Engines",
		Stage:        "mvp",
		PitchSummary: "A general-purpose computation engine for the modern startup, sold as a service.",
	}
	app.Status = models.ApplicationStatusPending
	suite.Require().NoError(suite.db.Create(app).Error)
	return app
}

func (suite *ReviewServiceTestSuite) TestUpdateStatusApproves() {
	app := suite.seedIncubation()

	appType := models.ApplicationTypeIncubation
	updated, err := suite.service.UpdateStatus(&appType, app.ID, models.ApplicationStatusApproved, "Strong team", suite.admin.ID)
	suite.Require().NoError(err)

	review := updated.Review()
	suite.Equal(models.ApplicationStatusApproved, review.Status)
	suite.Equal("Strong team", review.AdminNotes)
	suite.Require().NotNil(review.ReviewedBy)
	suite.Equal(suite.admin.ID, *review.ReviewedBy)
	suite.NotNil(review.ReviewedAt)

	// The write must be visible on a fresh read, not only on the returned value.
	var stored models.IncubationApplication
	suite.Require().NoError(suite.db.First(&stored, "id = ?", app.ID).Error)
	suite.Equal(models.ApplicationStatusApproved, stored.Status)
	suite.Equal("Strong team", stored.AdminNotes)

	var entries []models.ActivityLog
	suite.Require().NoError(suite.db.Find(&entries).Error)
	suite.Require().Len(entries, 1)
	suite.Equal(suite.admin.ID, entries[0].AdminID)
	suite.Equal(app.ID, entries[0].ApplicationID)
	suite.Equal(models.ApplicationTypeIncubation, entries[0].ApplicationType)
	suite.Equal(models.ApplicationStatusPending, entries[0].OldStatus)
	suite.Equal(models.ApplicationStatusApproved, entries[0].NewStatus)
	suite.Equal("Strong team", entries[0].Notes)
}

func (suite *ReviewServiceTestSuite) TestUpdateStatusWithoutTypeHint() {
	hackathon := &models.HackathonApplication{
		ParticipantName: "Grace Hopper",
		Email:           "grace@example.com",
		HackathonTitle:  "Compiler Jam 2026",
	}
	hackathon.Status = models.ApplicationStatusPending
	suite.Require().NoError(suite.db.Create(hackathon).Error)

	updated, err := suite.service.UpdateStatus(nil, hackathon.ID, models.ApplicationStatusUnderReview, "", suite.admin.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ApplicationTypeHackathon, updated.Type())
	suite.Equal(models.ApplicationStatusUnderReview, updated.Review().Status)

	var stored models.HackathonApplication
	suite.Require().NoError(suite.db.First(&stored, "id = ?", hackathon.ID).Error)
	suite.Equal(models.ApplicationStatusUnderReview, stored.Status)
}

func (suite *ReviewServiceTestSuite) TestUpdateStatusUnknownID() {
	_, err := suite.service.UpdateStatus(nil, uuid.New(), models.ApplicationStatusApproved, "", suite.admin.ID)
	suite.Require().ErrorIs(err, ErrApplicationNotFound)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.ActivityLog{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *ReviewServiceTestSuite) TestUpdateStatusWrongType() {
	app := suite.seedIncubation()

	appType := models.ApplicationTypeMentor
	_, err := suite.service.UpdateStatus(&appType, app.ID, models.ApplicationStatusApproved, "", suite.admin.ID)
	suite.Require().ErrorIs(err, ErrApplicationNotFound)

	var stored models.IncubationApplication
	suite.Require().NoError(suite.db.First(&stored, "id = ?", app.ID).Error)
	suite.Equal(models.ApplicationStatusPending, stored.Status)
}

func (suite *ReviewServiceTestSuite) TestUnknownStatusStoredVerbatim() {
	app := suite.seedIncubation()

	appType := models.ApplicationTypeIncubation
	updated, err := suite.service.UpdateStatus(&appType, app.ID, models.ApplicationStatus("on_hold"), "", suite.admin.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ApplicationStatus("on_hold"), updated.Review().Status)

	var stored models.IncubationApplication
	suite.Require().NoError(suite.db.First(&stored, "id = ?", app.ID).Error)
	suite.Equal(models.ApplicationStatus("on_hold"), stored.Status)
}

func (suite *ReviewServiceTestSuite) TestRepeatedReviewsLastWriteWins() {
	app := suite.seedIncubation()
	appType := models.ApplicationTypeIncubation

	_, err := suite.service.UpdateStatus(&appType, app.ID, models.ApplicationStatusApproved, "first pass", suite.admin.ID)
	suite.Require().NoError(err)

	second := &models.User{
		FullName: "Second Admin",
		Email:    "admin2@example.com",
		Role:     models.UserRoleAdmin,
		Status:   models.UserStatusActive,
	}
	suite.Require().NoError(second.SetPassword("AdminPass123"))
	suite.Require().NoError(suite.db.Create(second).Error)

	_, err = suite.service.UpdateStatus(&appType, app.ID, models.ApplicationStatusRejected, "overturned", second.ID)
	suite.Require().NoError(err)

	var stored models.IncubationApplication
	suite.Require().NoError(suite.db.First(&stored, "id = ?", app.ID).Error)
	suite.Equal(models.ApplicationStatusRejected, stored.Status)
	suite.Equal("overturned", stored.AdminNotes)
	suite.Require().NotNil(stored.ReviewedBy)
	suite.Equal(second.ID, *stored.ReviewedBy)

	// Both decisions remain in the audit trail.
	var entries []models.ActivityLog
	suite.Require().NoError(suite.db.Order("created_at").Find(&entries).Error)
	suite.Require().Len(entries, 2)
	suite.Equal(models.ApplicationStatusApproved, entries[0].NewStatus)
	suite.Equal(models.ApplicationStatusApproved, entries[1].OldStatus)
	suite.Equal(models.ApplicationStatusRejected, entries[1].NewStatus)
}

func (suite *ReviewServiceTestSuite) TestApprovedCanBeResetToPending() {
	app := suite.seedIncubation()
	appType := models.ApplicationTypeIncubation

	_, err := suite.service.UpdateStatus(&appType, app.ID, models.ApplicationStatusApproved, "looks good", suite.admin.ID)
	suite.Require().NoError(err)

	// An approval can be walked back to pending, there is no transition graph.
	updated, err := suite.service.UpdateStatus(&appType, app.ID, models.ApplicationStatusPending, "re-opening for a second look", suite.admin.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ApplicationStatusPending, updated.Review().Status)

	var stored models.IncubationApplication
	suite.Require().NoError(suite.db.First(&stored, "id = ?", app.ID).Error)
	suite.Equal(models.ApplicationStatusPending, stored.Status)
	suite.Equal("re-opening for a second look", stored.AdminNotes)

	var entries []models.ActivityLog
	suite.Require().NoError(suite.db.Order("created_at").Find(&entries).Error)
	suite.Require().Len(entries, 2)
	suite.Equal(models.ApplicationStatusApproved, entries[1].OldStatus)
	suite.Equal(models.ApplicationStatusPending, entries[1].NewStatus)
}

func (suite *ReviewServiceTestSuite) TestResolveApplicationProbesAllStores() {
	program := &models.ProgramApplication{
		ApplicantFullName: "Alan Turing",
		Email:             "alan@example.com",
		ProgramName:       "Spring Cohort",
		Motivation:        "I want to build machines that can answer any decidable question.",
	}
	program.Status = models.ApplicationStatusPending
	suite.Require().NoError(suite.db.Create(program).Error)

	resolved, err := suite.service.ResolveApplication(program.ID)
	suite.Require().NoError(err)
	suite.Equal(models.ApplicationTypeProgram, resolved.Type())
	suite.Equal(program.ID, resolved.GetID())
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
