// internal/models/activity.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is the append-only audit trail of status changes. Rows are
// created once per successful status update and never mutated or deleted.
type ActivityLog struct {
	BaseModel
	AdminID         uuid.UUID         `json:"admin_id" gorm:"type:uuid;not null;index"`
	ApplicationID   uuid.UUID         `json:"application_id" gorm:"type:uuid;not null;index"`
	ApplicationType ApplicationType   `json:"application_type" gorm:"type:varchar(20);not null;index"`
	OldStatus       ApplicationStatus `json:"old_status" gorm:"type:varchar(30)"`
	NewStatus       ApplicationStatus `json:"new_status" gorm:"type:varchar(30)"`
	Notes           string            `json:"notes,omitempty" gorm:"type:text"`

	// Relationships
	Admin User `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
}

// EmailLog records every dispatch attempt, append-only. A failed row means the
// provider rejected the message; the status update it belongs to still stands.
type EmailLog struct {
	BaseModel
	Recipient    string      `json:"recipient" gorm:"size:255;not null;index"`
	EmailType    string      `json:"email_type" gorm:"size:50;not null;index"`
	Subject      string      `json:"subject" gorm:"size:255"`
	Status       EmailStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ErrorMessage string      `json:"error_message,omitempty" gorm:"type:text"`
	SentAt       *time.Time  `json:"sent_at"`
}
