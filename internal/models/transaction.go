// internal/models/transaction.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction records a program-fee payment taken through Stripe.
type Transaction struct {
	BaseModel
	PayerID          uuid.UUID         `json:"payer_id" gorm:"type:uuid;not null;index"`
	ApplicationID    *uuid.UUID        `json:"application_id" gorm:"type:uuid;index"`
	ApplicationType  ApplicationType   `json:"application_type,omitempty" gorm:"type:varchar(20)"`
	Amount           float64           `json:"amount" gorm:"type:decimal(15,2);not null"`
	Currency         string            `json:"currency" gorm:"size:3;default:'usd'"`
	PaymentReference string            `json:"payment_reference,omitempty" gorm:"size:255;index"`
	Status           TransactionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ProcessedAt      *time.Time        `json:"processed_at"`

	// Relationships
	Payer User `json:"payer,omitempty" gorm:"foreignKey:PayerID"`
}
