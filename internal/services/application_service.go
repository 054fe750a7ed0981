// internal/services/application_service.go
package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/inccombinator/platform-backend/internal/models"
	"github.com/inccombinator/platform-backend/internal/utils"
)

// ApplicationService handles public form submissions and admin-side listing.
// Every application type has its own request struct with required and
// optional fields declared statically; validation happens here, at the
// boundary, before any store write. Domain fields are immutable after
// submission: there is no applicant-side edit path.
type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

type IncubationRequest struct {
	FounderName  string  `json:"founder_name" validate:"required,max=255"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        string  `json:"phone,omitempty" validate:"omitempty,max=50"`
	StartupName  string  `json:"startup_name" validate:"required,max=255"`
	Stage        string  `json:"stage" validate:"required,oneof=idea mvp early_revenue growth"`
	Industry     string  `json:"industry,omitempty" validate:"omitempty,max=100"`
	TeamSize     int     `json:"team_size,omitempty" validate:"omitempty,min=1,max=500"`
	FundingAsk   float64 `json:"funding_ask,omitempty" validate:"omitempty,min=0"`
	PitchSummary string  `json:"pitch_summary" validate:"required,min=50"`
	PitchDeckURL string  `json:"pitch_deck_url,omitempty" validate:"omitempty,url"`
}

type InvestmentRequest struct {
	InvestorName string  `json:"investor_name" validate:"required,max=255"`
	Email        string  `json:"email" validate:"required,email"`
	Firm         string  `json:"firm,omitempty" validate:"omitempty,max=255"`
	CheckSizeMin float64 `json:"check_size_min,omitempty" validate:"omitempty,min=0"`
	CheckSizeMax float64 `json:"check_size_max,omitempty" validate:"omitempty,min=0,gtefield=CheckSizeMin"`
	FocusAreas   string  `json:"focus_areas,omitempty"`
	Accredited   bool    `json:"accredited,omitempty"`
}

type HackathonRequest struct {
	ParticipantName string `json:"participant_name" validate:"required,max=255"`
	Email           string `json:"email" validate:"required,email"`
	HackathonTitle  string `json:"hackathon_title" validate:"required,max=255"`
	TeamName        string `json:"team_name,omitempty" validate:"omitempty,max=255"`
	Track           string `json:"track,omitempty" validate:"omitempty,max=100"`
	GithubURL       string `json:"github_url,omitempty" validate:"omitempty,url"`
}

type PartnershipRequest struct {
	ContactName     string `json:"contact_name" validate:"required,max=255"`
	Email           string `json:"email" validate:"required,email"`
	Organization    string `json:"organization" validate:"required,max=255"`
	PartnershipType string `json:"partnership_type" validate:"required,oneof=corporate academic community media"`
	Proposal        string `json:"proposal" validate:"required,min=30"`
}

type MentorRequest struct {
	MentorName        string `json:"mentor_name" validate:"required,max=255"`
	Email             string `json:"email" validate:"required,email"`
	Expertise         string `json:"expertise" validate:"required,max=255"`
	YearsOfExperience int    `json:"years_of_experience,omitempty" validate:"omitempty,min=0,max=60"`
	HoursPerWeek      int    `json:"hours_per_week,omitempty" validate:"omitempty,min=1,max=40"`
	LinkedinURL       string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
}

type ProgramRequest struct {
	ApplicantFullName string `json:"applicant_full_name" validate:"required,max=255"`
	Email             string `json:"email" validate:"required,email"`
	ProgramName       string `json:"program_name" validate:"required,max=255"`
	Cohort            string `json:"cohort,omitempty" validate:"omitempty,max=50"`
	Motivation        string `json:"motivation" validate:"required,min=30"`
}

// Submit validates the typed payload for appType and writes the new row with
// status pending.
func (s *ApplicationService) Submit(appType models.ApplicationType, req interface{}) (models.Application, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var app models.Application
	switch r := req.(type) {
	case *IncubationRequest:
		app = &models.IncubationApplication{
			FounderName:  r.FounderName,
			Email:        r.Email,
			Phone:        r.Phone,
			StartupName:  r.StartupName,
			Stage:        r.Stage,
			Industry:     r.Industry,
			TeamSize:     r.TeamSize,
			FundingAsk:   r.FundingAsk,
			PitchSummary: r.PitchSummary,
			PitchDeckURL: r.PitchDeckURL,
		}
	case *InvestmentRequest:
		app = &models.InvestmentApplication{
			InvestorName: r.InvestorName,
			Email:        r.Email,
			Firm:         r.Firm,
			CheckSizeMin: r.CheckSizeMin,
			CheckSizeMax: r.CheckSizeMax,
			FocusAreas:   r.FocusAreas,
			Accredited:   r.Accredited,
		}
	case *HackathonRequest:
		app = &models.HackathonApplication{
			ParticipantName: r.ParticipantName,
			Email:           r.Email,
			HackathonTitle:  r.HackathonTitle,
			TeamName:        r.TeamName,
			Track:           r.Track,
			GithubURL:       r.GithubURL,
		}
	case *PartnershipRequest:
		app = &models.PartnershipApplication{
			ContactName:     r.ContactName,
			Email:           r.Email,
			Organization:    r.Organization,
			PartnershipType: r.PartnershipType,
			Proposal:        r.Proposal,
		}
	case *MentorRequest:
		app = &models.MentorApplication{
			MentorName:        r.MentorName,
			Email:             r.Email,
			Expertise:         r.Expertise,
			YearsOfExperience: r.YearsOfExperience,
			HoursPerWeek:      r.HoursPerWeek,
			LinkedinURL:       r.LinkedinURL,
		}
	case *ProgramRequest:
		app = &models.ProgramApplication{
			ApplicantFullName: r.ApplicantFullName,
			Email:             r.Email,
			ProgramName:       r.ProgramName,
			Cohort:            r.Cohort,
			Motivation:        r.Motivation,
		}
	default:
		return nil, fmt.Errorf("unsupported request type for %s application", appType)
	}

	if app.Type() != appType {
		return nil, fmt.Errorf("request payload does not match application type %s", appType)
	}

	// Every submission starts in the pending queue.
	app.Review().Status = models.ApplicationStatusPending

	if err := s.db.Create(app).Error; err != nil {
		return nil, fmt.Errorf("failed to create %s application: %w", appType, err)
	}

	logrus.WithFields(logrus.Fields{
		"application_id":   app.GetID(),
		"application_type": appType,
		"email":            app.ApplicantEmail(),
	}).Info("Application submitted")

	return app, nil
}

// NewRequest returns an empty request struct for the given type, usable as a
// JSON bind destination.
func NewRequest(appType models.ApplicationType) interface{} {
	switch appType {
	case models.ApplicationTypeIncubation:
		return &IncubationRequest{}
	case models.ApplicationTypeInvestment:
		return &InvestmentRequest{}
	case models.ApplicationTypeHackathon:
		return &HackathonRequest{}
	case models.ApplicationTypePartnership:
		return &PartnershipRequest{}
	case models.ApplicationTypeMentor:
		return &MentorRequest{}
	case models.ApplicationTypeProgram:
		return &ProgramRequest{}
	default:
		return nil
	}
}

type ApplicationFilter struct {
	utils.PaginationParams
	Status        *models.ApplicationStatus `json:"status,omitempty"`
	CreatedAfter  *time.Time                `json:"created_after,omitempty"`
	CreatedBefore *time.Time                `json:"created_before,omitempty"`
}

// List returns one page of applications of the given type.
func (s *ApplicationService) List(appType models.ApplicationType, filter ApplicationFilter) (interface{}, int64, error) {
	model := models.NewApplication(appType)
	if model == nil {
		return nil, 0, fmt.Errorf("unknown application type %q", appType)
	}

	query := s.db.Model(model)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("email ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "status", "reviewed_at"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	switch appType {
	case models.ApplicationTypeIncubation:
		var apps []models.IncubationApplication
		if err := query.Find(&apps).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to fetch applications: %w", err)
		}
		return apps, total, nil
	case models.ApplicationTypeInvestment:
		var apps []models.InvestmentApplication
		if err := query.Find(&apps).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to fetch applications: %w", err)
		}
		return apps, total, nil
	case models.ApplicationTypeHackathon:
		var apps []models.HackathonApplication
		if err := query.Find(&apps).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to fetch applications: %w", err)
		}
		return apps, total, nil
	case models.ApplicationTypePartnership:
		var apps []models.PartnershipApplication
		if err := query.Find(&apps).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to fetch applications: %w", err)
		}
		return apps, total, nil
	case models.ApplicationTypeMentor:
		var apps []models.MentorApplication
		if err := query.Find(&apps).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to fetch applications: %w", err)
		}
		return apps, total, nil
	default:
		var apps []models.ProgramApplication
		if err := query.Find(&apps).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to fetch applications: %w", err)
		}
		return apps, total, nil
	}
}

// ListByEmail collects a user's applications across every store, newest first
// within each type.
func (s *ApplicationService) ListByEmail(email string) ([]models.Application, error) {
	var result []models.Application

	var incubations []models.IncubationApplication
	if err := s.db.Where("email = ?", email).Order("created_at DESC").Find(&incubations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch incubation applications: %w", err)
	}
	for i := range incubations {
		result = append(result, &incubations[i])
	}

	var investments []models.InvestmentApplication
	if err := s.db.Where("email = ?", email).Order("created_at DESC").Find(&investments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch investment applications: %w", err)
	}
	for i := range investments {
		result = append(result, &investments[i])
	}

	var hackathons []models.HackathonApplication
	if err := s.db.Where("email = ?", email).Order("created_at DESC").Find(&hackathons).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch hackathon applications: %w", err)
	}
	for i := range hackathons {
		result = append(result, &hackathons[i])
	}

	var partnerships []models.PartnershipApplication
	if err := s.db.Where("email = ?", email).Order("created_at DESC").Find(&partnerships).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch partnership applications: %w", err)
	}
	for i := range partnerships {
		result = append(result, &partnerships[i])
	}

	var mentors []models.MentorApplication
	if err := s.db.Where("email = ?", email).Order("created_at DESC").Find(&mentors).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch mentor applications: %w", err)
	}
	for i := range mentors {
		result = append(result, &mentors[i])
	}

	var programs []models.ProgramApplication
	if err := s.db.Where("email = ?", email).Order("created_at DESC").Find(&programs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch program applications: %w", err)
	}
	for i := range programs {
		result = append(result, &programs[i])
	}

	return result, nil
}
