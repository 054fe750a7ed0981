// internal/models/application.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewFields is embedded by every application table. Status holds the wire
// value verbatim; ReviewedBy and ReviewedAt are overwritten on each review, so
// only the most recent review is retained here (history lives in ActivityLog).
type ReviewFields struct {
	Status     ApplicationStatus `json:"status" gorm:"type:varchar(30);default:'pending';index"`
	AdminNotes string            `json:"admin_notes,omitempty" gorm:"type:text"`
	ReviewedBy *uuid.UUID        `json:"reviewed_by" gorm:"type:uuid"`
	ReviewedAt *time.Time        `json:"reviewed_at"`
}

// Application is the tagged union over the six per-type tables. Each submitted
// form lives in its own table with statically declared fields; the interface
// gives the review workflow a uniform view of the parts it touches.
type Application interface {
	GetID() uuid.UUID
	Type() ApplicationType
	Review() *ReviewFields
	ApplicantName() string
	ApplicantEmail() string
	// EmailData returns the domain fields merged into notification templates.
	EmailData() map[string]string
}

// NewApplication returns an empty record of the given type, usable as a gorm
// query destination.
func NewApplication(t ApplicationType) Application {
	switch t {
	case ApplicationTypeIncubation:
		return &IncubationApplication{}
	case ApplicationTypeInvestment:
		return &InvestmentApplication{}
	case ApplicationTypeHackathon:
		return &HackathonApplication{}
	case ApplicationTypePartnership:
		return &PartnershipApplication{}
	case ApplicationTypeMentor:
		return &MentorApplication{}
	case ApplicationTypeProgram:
		return &ProgramApplication{}
	default:
		return nil
	}
}

type IncubationApplication struct {
	BaseModel
	ReviewFields
	FounderName  string  `json:"founder_name" gorm:"size:255;not null"`
	Email        string  `json:"email" gorm:"size:255;not null;index"`
	Phone        string  `json:"phone,omitempty" gorm:"size:50"`
	StartupName  string  `json:"startup_name" gorm:"size:255;not null"`
	Stage        string  `json:"stage" gorm:"size:50;not null"`
	Industry     string  `json:"industry" gorm:"size:100"`
	TeamSize     int     `json:"team_size" gorm:"default:1"`
	FundingAsk   float64 `json:"funding_ask" gorm:"type:decimal(15,2)"`
	PitchSummary string  `json:"pitch_summary" gorm:"type:text;not null"`
	PitchDeckURL string  `json:"pitch_deck_url,omitempty" gorm:"size:512"`
}

func (a *IncubationApplication) GetID() uuid.UUID      { return a.ID }
func (a *IncubationApplication) Type() ApplicationType { return ApplicationTypeIncubation }
func (a *IncubationApplication) Review() *ReviewFields { return &a.ReviewFields }
func (a *IncubationApplication) ApplicantName() string { return a.FounderName }
func (a *IncubationApplication) ApplicantEmail() string {
	return a.Email
}
func (a *IncubationApplication) EmailData() map[string]string {
	return map[string]string{"startup_name": a.StartupName, "stage": a.Stage}
}

type InvestmentApplication struct {
	BaseModel
	ReviewFields
	InvestorName string  `json:"investor_name" gorm:"size:255;not null"`
	Email        string  `json:"email" gorm:"size:255;not null;index"`
	Firm         string  `json:"firm,omitempty" gorm:"size:255"`
	CheckSizeMin float64 `json:"check_size_min" gorm:"type:decimal(15,2)"`
	CheckSizeMax float64 `json:"check_size_max" gorm:"type:decimal(15,2)"`
	FocusAreas   string  `json:"focus_areas,omitempty" gorm:"type:text"`
	Accredited   bool    `json:"accredited" gorm:"default:false"`
}

func (a *InvestmentApplication) GetID() uuid.UUID       { return a.ID }
func (a *InvestmentApplication) Type() ApplicationType  { return ApplicationTypeInvestment }
func (a *InvestmentApplication) Review() *ReviewFields  { return &a.ReviewFields }
func (a *InvestmentApplication) ApplicantName() string  { return a.InvestorName }
func (a *InvestmentApplication) ApplicantEmail() string { return a.Email }
func (a *InvestmentApplication) EmailData() map[string]string {
	return map[string]string{"firm": a.Firm}
}

type HackathonApplication struct {
	BaseModel
	ReviewFields
	ParticipantName string `json:"participant_name" gorm:"size:255;not null"`
	Email           string `json:"email" gorm:"size:255;not null;index"`
	HackathonTitle  string `json:"hackathon_title" gorm:"size:255;not null"`
	TeamName        string `json:"team_name,omitempty" gorm:"size:255"`
	Track           string `json:"track,omitempty" gorm:"size:100"`
	GithubURL       string `json:"github_url,omitempty" gorm:"size:512"`
}

func (a *HackathonApplication) GetID() uuid.UUID       { return a.ID }
func (a *HackathonApplication) Type() ApplicationType  { return ApplicationTypeHackathon }
func (a *HackathonApplication) Review() *ReviewFields  { return &a.ReviewFields }
func (a *HackathonApplication) ApplicantName() string  { return a.ParticipantName }
func (a *HackathonApplication) ApplicantEmail() string { return a.Email }
func (a *HackathonApplication) EmailData() map[string]string {
	return map[string]string{"hackathon_title": a.HackathonTitle, "team_name": a.TeamName}
}

type PartnershipApplication struct {
	BaseModel
	ReviewFields
	ContactName     string `json:"contact_name" gorm:"size:255;not null"`
	Email           string `json:"email" gorm:"size:255;not null;index"`
	Organization    string `json:"organization" gorm:"size:255;not null"`
	PartnershipType string `json:"partnership_type" gorm:"size:100;not null"`
	Proposal        string `json:"proposal" gorm:"type:text;not null"`
}

func (a *PartnershipApplication) GetID() uuid.UUID       { return a.ID }
func (a *PartnershipApplication) Type() ApplicationType  { return ApplicationTypePartnership }
func (a *PartnershipApplication) Review() *ReviewFields  { return &a.ReviewFields }
func (a *PartnershipApplication) ApplicantName() string  { return a.ContactName }
func (a *PartnershipApplication) ApplicantEmail() string { return a.Email }
func (a *PartnershipApplication) EmailData() map[string]string {
	return map[string]string{"organization": a.Organization}
}

type MentorApplication struct {
	BaseModel
	ReviewFields
	MentorName        string `json:"mentor_name" gorm:"size:255;not null"`
	Email             string `json:"email" gorm:"size:255;not null;index"`
	Expertise         string `json:"expertise" gorm:"size:255;not null"`
	YearsOfExperience int    `json:"years_of_experience" gorm:"default:0"`
	HoursPerWeek      int    `json:"hours_per_week" gorm:"default:1"`
	LinkedinURL       string `json:"linkedin_url,omitempty" gorm:"size:512"`
}

func (a *MentorApplication) GetID() uuid.UUID       { return a.ID }
func (a *MentorApplication) Type() ApplicationType  { return ApplicationTypeMentor }
func (a *MentorApplication) Review() *ReviewFields  { return &a.ReviewFields }
func (a *MentorApplication) ApplicantName() string  { return a.MentorName }
func (a *MentorApplication) ApplicantEmail() string { return a.Email }
func (a *MentorApplication) EmailData() map[string]string {
	return map[string]string{"expertise": a.Expertise}
}

type ProgramApplication struct {
	BaseModel
	ReviewFields
	ApplicantFullName string `json:"applicant_full_name" gorm:"size:255;not null"`
	Email             string `json:"email" gorm:"size:255;not null;index"`
	ProgramName       string `json:"program_name" gorm:"size:255;not null"`
	Cohort            string `json:"cohort,omitempty" gorm:"size:50"`
	Motivation        string `json:"motivation" gorm:"type:text;not null"`
}

func (a *ProgramApplication) GetID() uuid.UUID       { return a.ID }
func (a *ProgramApplication) Type() ApplicationType  { return ApplicationTypeProgram }
func (a *ProgramApplication) Review() *ReviewFields  { return &a.ReviewFields }
func (a *ProgramApplication) ApplicantName() string  { return a.ApplicantFullName }
func (a *ProgramApplication) ApplicantEmail() string { return a.Email }
func (a *ProgramApplication) EmailData() map[string]string {
	return map[string]string{"program_name": a.ProgramName, "cohort": a.Cohort}
}
