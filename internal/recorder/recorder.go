package recorder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"payment-engine/internal/models"
	"payment-engine/internal/repository"
)

// Recorder persists authorized payments and handles refunds. It is only
// invoked for successful outcomes; declines live in metrics alone.
//
// There is no idempotency key derived from the request: every call appends a
// new record, so a caller that retries a succeeded Process call will create a
// duplicate. Deduplication is a caller concern until decided otherwise.
type Recorder struct {
	store  repository.RecordStore
	logger *zap.Logger
}

func New(store repository.RecordStore, logger *zap.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record writes one PaymentRecord for a successful authorization and returns
// its id.
func (r *Recorder) Record(ctx context.Context, req *models.PaymentRequest, outcome models.AuthorizationOutcome, assessment models.RiskAssessment) (string, error) {
	record := &models.PaymentRecord{
		ID:            uuid.New().String(),
		Method:        req.Method,
		Amount:        req.Amount,
		TransactionID: outcome.TransactionID,
		AuthCode:      outcome.AuthCode,
		ResponseCode:  outcome.ResponseCode,
		FraudScore:    assessment.Score,
		Status:        models.RecordStatusCompleted,
		Metadata:      outcome.Metadata,
		CreatedAt:     time.Now(),
	}

	if brand, ok := outcome.Metadata["card_brand"].(string); ok {
		record.CardBrand = brand
	}
	if last4, ok := outcome.Metadata["card_last4"].(string); ok {
		record.CardLast4 = last4
	}

	if err := r.store.Append(ctx, record); err != nil {
		return "", fmt.Errorf("failed to append payment record: %w", err)
	}

	r.logger.Info("payment recorded",
		zap.String("record_id", record.ID),
		zap.String("transaction_id", record.TransactionID),
		zap.String("method", string(record.Method)),
		zap.Float64("amount", record.Amount))

	return record.ID, nil
}

// Refund appends a negative-amount record linked to the original payment.
// When the refunded amount covers the original in full, the original's status
// transitions to refunded; partial refunds leave it untouched.
func (r *Recorder) Refund(ctx context.Context, paymentID string, amount float64, reason string) (*models.PaymentRecord, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("refund amount must be positive, got %.2f", amount)
	}

	original, err := r.store.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load original payment: %w", err)
	}
	if original.Status == models.RecordStatusRefunded {
		return nil, fmt.Errorf("payment %s is already refunded", paymentID)
	}

	refund := &models.PaymentRecord{
		ID:              uuid.New().String(),
		Method:          original.Method,
		Amount:          -amount,
		TransactionID:   original.TransactionID,
		Status:          models.RecordStatusRefund,
		LinkedPaymentID: original.ID,
		RefundReason:    reason,
		CreatedAt:       time.Now(),
	}

	if err := r.store.Append(ctx, refund); err != nil {
		return nil, fmt.Errorf("failed to append refund record: %w", err)
	}

	if amount >= original.Amount {
		if err := r.store.UpdateStatus(ctx, original.ID, models.RecordStatusRefunded); err != nil {
			return nil, fmt.Errorf("failed to mark payment refunded: %w", err)
		}
	}

	r.logger.Info("refund recorded",
		zap.String("refund_id", refund.ID),
		zap.String("payment_id", original.ID),
		zap.Float64("amount", amount))

	return refund, nil
}

// Get loads one payment record.
func (r *Recorder) Get(ctx context.Context, paymentID string) (*models.PaymentRecord, error) {
	return r.store.GetByID(ctx, paymentID)
}
