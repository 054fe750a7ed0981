// internal/services/application_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inccombinator/platform-backend/internal/models"
	"github.com/inccombinator/platform-backend/internal/utils"
)

type ApplicationServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ApplicationService
}

func (suite *ApplicationServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.IncubationApplication{},
		&models.InvestmentApplication{},
		&models.HackathonApplication{},
		&models.PartnershipApplication{},
		&models.MentorApplication{},
		&models.ProgramApplication{},
	)
	suite.Require().NoError(err)

	suite.db = db
	suite.service = NewApplicationService(db)
}

func validIncubationRequest() *IncubationRequest {
	return &IncubationRequest{
		FounderName:  "Ada Lovelace",
		Email:        "ada@example.com",
		StartupName:  "Analytical Engines",
		Stage:        "mvp",
		TeamSize:     4,
		PitchSummary: "A general-purpose computation engine for the modern startup, sold as a service.",
	}
}

func (suite *ApplicationServiceTestSuite) TestSubmitIncubation() {
	app, err := suite.service.Submit(models.ApplicationTypeIncubation, validIncubationRequest())
	suite.Require().NoError(err)
	suite.Equal(models.ApplicationTypeIncubation, app.Type())
	suite.Equal(models.ApplicationStatusPending, app.Review().Status)
	suite.Equal("Ada Lovelace", app.ApplicantName())
	suite.Equal("ada@example.com", app.ApplicantEmail())

	var stored models.IncubationApplication
	suite.Require().NoError(suite.db.First(&stored, "id = ?", app.GetID()).Error)
	suite.Equal("Analytical Engines", stored.StartupName)
	suite.Equal(models.ApplicationStatusPending, stored.Status)
}

func (suite *ApplicationServiceTestSuite) TestSubmitRejectsInvalidPayload() {
	req := validIncubationRequest()
	req.PitchSummary = "too short"

	_, err := suite.service.Submit(models.ApplicationTypeIncubation, req)
	suite.Require().Error(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.IncubationApplication{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *ApplicationServiceTestSuite) TestSubmitRejectsUnknownStage() {
	req := validIncubationRequest()
	req.Stage = "unicorn"

	_, err := suite.service.Submit(models.ApplicationTypeIncubation, req)
	suite.Require().Error(err)
}

func (suite *ApplicationServiceTestSuite) TestSubmitRejectsMismatchedPayload() {
	_, err := suite.service.Submit(models.ApplicationTypeMentor, validIncubationRequest())
	suite.Require().Error(err)
}

func (suite *ApplicationServiceTestSuite) TestListFiltersByStatus() {
	first, err := suite.service.Submit(models.ApplicationTypeHackathon, &HackathonRequest{
		ParticipantName: "Grace Hopper",
		Email:           "grace@example.com",
		HackathonTitle:  "Compiler Jam 2026",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Submit(models.ApplicationTypeHackathon, &HackathonRequest{
		ParticipantName: "Alan Turing",
		Email:           "alan@example.com",
		HackathonTitle:  "Compiler Jam 2026",
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Model(&models.HackathonApplication{}).
		Where("id = ?", first.GetID()).
		Update("status", models.ApplicationStatusApproved).Error)

	approved := models.ApplicationStatusApproved
	apps, total, err := suite.service.List(models.ApplicationTypeHackathon, ApplicationFilter{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"},
		Status:           &approved,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)

	hackathons, ok := apps.([]models.HackathonApplication)
	suite.Require().True(ok)
	suite.Require().Len(hackathons, 1)
	suite.Equal(first.GetID(), hackathons[0].ID)
}

func (suite *ApplicationServiceTestSuite) TestListByEmailSpansStores() {
	_, err := suite.service.Submit(models.ApplicationTypeIncubation, validIncubationRequest())
	suite.Require().NoError(err)

	_, err = suite.service.Submit(models.ApplicationTypeMentor, &MentorRequest{
		MentorName: "Ada Lovelace",
		Email:      "ada@example.com",
		Expertise:  "Mathematics",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Submit(models.ApplicationTypeMentor, &MentorRequest{
		MentorName: "Someone Else",
		Email:      "other@example.com",
		Expertise:  "Marketing",
	})
	suite.Require().NoError(err)

	apps, err := suite.service.ListByEmail("ada@example.com")
	suite.Require().NoError(err)
	suite.Require().Len(apps, 2)

	types := []models.ApplicationType{apps[0].Type(), apps[1].Type()}
	suite.Contains(types, models.ApplicationTypeIncubation)
	suite.Contains(types, models.ApplicationTypeMentor)
	for _, app := range apps {
		suite.Equal("ada@example.com", app.ApplicantEmail())
	}
}

func TestApplicationServiceSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}
