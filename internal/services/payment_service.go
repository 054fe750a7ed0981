// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/inccombinator/platform-backend/internal/config"
	"github.com/inccombinator/platform-backend/internal/models"
	"github.com/inccombinator/platform-backend/internal/utils"
)

// PaymentService takes program fees through Stripe. Each intent is mirrored by
// a pending transaction row that is settled on confirmation.
type PaymentService struct {
	db     *gorm.DB
	config *config.Config
}

type CreatePaymentIntentRequest struct {
	ApplicationID   uuid.UUID `json:"application_id" validate:"required"`
	ApplicationType string    `json:"application_type" validate:"required"`
	Currency        string    `json:"currency,omitempty"`
}

type PaymentIntentResponse struct {
	ClientSecret  string    `json:"client_secret"`
	PaymentID     string    `json:"payment_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	TransactionID   uuid.UUID `json:"transaction_id" validate:"required"`
}

func NewPaymentService(db *gorm.DB, cfg *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: cfg,
	}
}

func (s *PaymentService) CreateProgramFeeIntent(payerID uuid.UUID, req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	appType, err := models.ParseApplicationType(req.ApplicationType)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	amount := s.config.Payment.ProgramFeeAmount

	// Convert amount to cents for Stripe
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("payer_id", payerID.String())
	params.AddMetadata("application_id", req.ApplicationID.String())
	params.AddMetadata("application_type", string(appType))

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	transaction := &models.Transaction{
		PayerID:          payerID,
		ApplicationID:    &req.ApplicationID,
		ApplicationType:  appType,
		Amount:           amount,
		Currency:         currency,
		PaymentReference: pi.ID,
		Status:           models.TransactionStatusPending,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret:  pi.ClientSecret,
		PaymentID:     pi.ID,
		TransactionID: transaction.ID,
		Amount:        amount,
		Status:        string(pi.Status),
	}, nil
}

func (s *PaymentService) ConfirmPayment(req *ConfirmPaymentRequest) (*models.Transaction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	var transaction models.Transaction
	if err := s.db.First(&transaction, "id = ?", req.TransactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("transaction not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		now := time.Now()
		transaction.Status = models.TransactionStatusCompleted
		transaction.ProcessedAt = &now
	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		transaction.Status = models.TransactionStatusPending
	default:
		transaction.Status = models.TransactionStatusFailed
	}

	if err := s.db.Save(&transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &transaction, nil
}

func (s *PaymentService) GetPaymentHistory(payerID uuid.UUID, params utils.PaginationParams) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{}).Where("payer_id = ?", payerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	allowedSortFields := []string{"created_at", "amount", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return transactions, total, nil
}
