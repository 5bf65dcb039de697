package processor

import (
	"context"
	"testing"

	"payment-engine/internal/models"
)

func TestCardProcessorDeterministicDeclines(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		wantCode   string
	}{
		{
			name:       "insufficient funds trigger",
			cardNumber: "4000001234567890",
			wantCode:   models.ErrInsufficientFunds,
		},
		{
			name:       "invalid card trigger",
			cardNumber: "4111119876543210",
			wantCode:   models.ErrInvalidCard,
		},
		{
			name:       "expired card trigger",
			cardNumber: "4222212345678901",
			wantCode:   models.ErrExpiredCard,
		},
		{
			name:       "do not honor trigger",
			cardNumber: "4333312345678901",
			wantCode:   models.ErrDoNotHonor,
		},
	}

	p := NewCardProcessor(StaticSource{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := p.Authorize(context.Background(), &models.PaymentRequest{
				Method:     models.MethodCard,
				Amount:     10_000,
				CardNumber: tt.cardNumber,
			})
			if out.Success {
				t.Fatal("Authorize() succeeded, want decline")
			}
			if out.ErrorCode != tt.wantCode {
				t.Errorf("Authorize() code = %v, want %v", out.ErrorCode, tt.wantCode)
			}
			if out.Retryable {
				t.Error("card declines must not be retryable")
			}
		})
	}
}

func TestCardProcessorApproves(t *testing.T) {
	p := NewCardProcessor(StaticSource{})

	out := p.Authorize(context.Background(), &models.PaymentRequest{
		Method:     models.MethodCard,
		Amount:     10_000,
		CardNumber: "4242424242424242",
	})

	if !out.Success {
		t.Fatalf("Authorize() declined: %v %v", out.ErrorCode, out.Message)
	}
	if out.ResponseCode != "00" {
		t.Errorf("response code = %v, want 00", out.ResponseCode)
	}
	if out.TransactionID == "" || out.AuthCode == "" {
		t.Error("approved outcome missing transaction id or auth code")
	}
	if out.Metadata["card_brand"] != "visa" {
		t.Errorf("card brand = %v, want visa", out.Metadata["card_brand"])
	}
	if out.Metadata["card_last4"] != "4242" {
		t.Errorf("card last4 = %v, want 4242", out.Metadata["card_last4"])
	}
}
