package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"

	"payment-engine/internal/models"
)

// ErrRecordNotFound is returned when a payment record id has no row.
var ErrRecordNotFound = errors.New("payment record not found")

// RecordStore is the narrow write/read boundary the engine uses for payment
// records. Records are append-only; the only permitted mutation is the status
// transition of an original record when it is fully refunded.
type RecordStore interface {
	Append(ctx context.Context, record *models.PaymentRecord) error
	GetByID(ctx context.Context, id string) (*models.PaymentRecord, error)
	UpdateStatus(ctx context.Context, id string, status models.RecordStatus) error
}

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Append(ctx context.Context, record *models.PaymentRecord) error {
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO payment_records (
			id, method, amount, transaction_id, auth_code, response_code,
			fraud_score, card_brand, card_last4, status, linked_payment_id,
			refund_reason, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.db.ExecContext(ctx, query,
		record.ID,
		record.Method,
		record.Amount,
		record.TransactionID,
		record.AuthCode,
		record.ResponseCode,
		record.FraudScore,
		record.CardBrand,
		record.CardLast4,
		record.Status,
		record.LinkedPaymentID,
		record.RefundReason,
		metadata,
		record.CreatedAt,
	)

	return err
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*models.PaymentRecord, error) {
	query := `
		SELECT id, method, amount, transaction_id, auth_code, response_code,
			   fraud_score, card_brand, card_last4, status, linked_payment_id,
			   refund_reason, metadata, created_at
		FROM payment_records WHERE id = $1
	`

	record := &models.PaymentRecord{}
	var metadata []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.Method,
		&record.Amount,
		&record.TransactionID,
		&record.AuthCode,
		&record.ResponseCode,
		&record.FraudScore,
		&record.CardBrand,
		&record.CardLast4,
		&record.Status,
		&record.LinkedPaymentID,
		&record.RefundReason,
		&metadata,
		&record.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &record.Metadata); err != nil {
			return nil, err
		}
	}

	return record, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status models.RecordStatus) error {
	query := `UPDATE payment_records SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// MemoryStore is a mutex-guarded in-memory RecordStore for tests and
// development wiring.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*models.PaymentRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*models.PaymentRecord)}
}

func (s *MemoryStore) Append(_ context.Context, record *models.PaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *record
	s.records[record.ID] = &clone
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (*models.PaymentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	clone := *record
	return &clone, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id string, status models.RecordStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return ErrRecordNotFound
	}
	record.Status = status
	return nil
}

// Len reports how many records are stored. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
