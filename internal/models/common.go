// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// BeforeCreate assigns ids application-side so the schema works unchanged on
// both postgres and the sqlite driver the tests run on.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleStartup  UserRole = "startup"
	UserRoleInvestor UserRole = "investor"
	UserRoleUser     UserRole = "user"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type ApplicationType string

const (
	ApplicationTypeIncubation  ApplicationType = "incubation"
	ApplicationTypeInvestment  ApplicationType = "investment"
	ApplicationTypeHackathon   ApplicationType = "hackathon"
	ApplicationTypePartnership ApplicationType = "partnership"
	ApplicationTypeMentor      ApplicationType = "mentor"
	ApplicationTypeProgram     ApplicationType = "program"
)

// ApplicationTypes is the fixed probe order used when a status update arrives
// without a type hint. Resolution stops at the first store whose primary key
// matches.
var ApplicationTypes = []ApplicationType{
	ApplicationTypeIncubation,
	ApplicationTypeInvestment,
	ApplicationTypeHackathon,
	ApplicationTypePartnership,
	ApplicationTypeMentor,
	ApplicationTypeProgram,
}

func ParseApplicationType(s string) (ApplicationType, error) {
	t := ApplicationType(s)
	for _, known := range ApplicationTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown application type %q", s)
}

// Review statuses. Wire values are the exact lowercase strings; anything else
// is stored verbatim and treated as "unknown" by the notification dispatcher.
// There is deliberately no legal-transition graph: any status may overwrite
// any other, which keeps manual corrections possible.
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusApproved    ApplicationStatus = "approved"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

type EmailStatus string

const (
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
	EmailStatusPending EmailStatus = "pending"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)
