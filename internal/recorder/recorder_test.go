package recorder

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"payment-engine/internal/models"
	"payment-engine/internal/repository"
)

func newRecorder() (*Recorder, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	return New(store, zap.NewNop()), store
}

func record(t *testing.T, r *Recorder) string {
	t.Helper()

	req := &models.PaymentRequest{Method: models.MethodCard, Amount: 75_000, CardNumber: "4242424242424242"}
	outcome := models.Approved("TXN-TEST1", "A1B2C3", "00", 450, map[string]interface{}{
		"card_brand": "visa",
		"card_last4": "4242",
	})

	id, err := r.Record(context.Background(), req, outcome, models.RiskAssessment{Score: 2, Level: models.RiskLevelLow})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	return id
}

func TestRecord(t *testing.T) {
	r, store := newRecorder()
	id := record(t, r)

	got, err := store.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}

	if got.Method != models.MethodCard || got.Amount != 75_000 {
		t.Errorf("record = %+v", got)
	}
	if got.TransactionID != "TXN-TEST1" || got.AuthCode != "A1B2C3" || got.ResponseCode != "00" {
		t.Errorf("gateway fields = %v / %v / %v", got.TransactionID, got.AuthCode, got.ResponseCode)
	}
	if got.FraudScore != 2 {
		t.Errorf("fraud score = %d, want 2", got.FraudScore)
	}
	if got.CardBrand != "visa" || got.CardLast4 != "4242" {
		t.Errorf("card fields = %v / %v", got.CardBrand, got.CardLast4)
	}
	if got.Status != models.RecordStatusCompleted {
		t.Errorf("status = %v, want %v", got.Status, models.RecordStatusCompleted)
	}
}

func TestRecordHasNoIdempotencyKey(t *testing.T) {
	// Two identical calls create two records. Caller-side retries duplicate
	// by design of the current contract.
	r, store := newRecorder()
	first := record(t, r)
	second := record(t, r)

	if first == second {
		t.Error("expected distinct record ids")
	}
	if store.Len() != 2 {
		t.Errorf("store holds %d records, want 2", store.Len())
	}
}

func TestRefundFull(t *testing.T) {
	r, store := newRecorder()
	id := record(t, r)

	refund, err := r.Refund(context.Background(), id, 75_000, "customer request")
	if err != nil {
		t.Fatalf("Refund() error: %v", err)
	}

	if refund.Amount != -75_000 {
		t.Errorf("refund amount = %v, want -75000", refund.Amount)
	}
	if refund.LinkedPaymentID != id {
		t.Errorf("refund linked to %v, want %v", refund.LinkedPaymentID, id)
	}
	if refund.Status != models.RecordStatusRefund {
		t.Errorf("refund status = %v, want %v", refund.Status, models.RecordStatusRefund)
	}

	original, _ := store.GetByID(context.Background(), id)
	if original.Status != models.RecordStatusRefunded {
		t.Errorf("original status = %v, want refunded", original.Status)
	}

	// A second full refund is rejected.
	if _, err := r.Refund(context.Background(), id, 75_000, "again"); err == nil {
		t.Error("Refund() allowed refunding an already-refunded payment")
	}
}

func TestRefundPartialKeepsOriginalCompleted(t *testing.T) {
	r, store := newRecorder()
	id := record(t, r)

	refund, err := r.Refund(context.Background(), id, 20_000, "partial")
	if err != nil {
		t.Fatalf("Refund() error: %v", err)
	}
	if refund.Amount != -20_000 {
		t.Errorf("refund amount = %v, want -20000", refund.Amount)
	}

	original, _ := store.GetByID(context.Background(), id)
	if original.Status != models.RecordStatusCompleted {
		t.Errorf("original status = %v, want completed after partial refund", original.Status)
	}
}

func TestRefundUnknownPayment(t *testing.T) {
	r, _ := newRecorder()

	if _, err := r.Refund(context.Background(), "missing", 10_000, ""); err == nil {
		t.Error("Refund() of unknown payment did not fail")
	}
}
