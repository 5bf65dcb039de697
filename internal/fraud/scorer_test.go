package fraud

import (
	"reflect"
	"testing"
	"time"

	"payment-engine/internal/models"
)

func at(hour int) time.Time {
	return time.Date(2024, time.March, 15, hour, 30, 0, 0, time.UTC)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		req         models.PaymentRequest
		hour        int
		wantScore   int
		wantLevel   models.RiskLevel
		wantFactors []string
	}{
		{
			name:        "small daytime card payment",
			req:         models.PaymentRequest{Method: models.MethodCard, Amount: 50_000},
			hour:        12,
			wantScore:   0,
			wantLevel:   models.RiskLevelLow,
			wantFactors: []string{},
		},
		{
			name:        "high amount only",
			req:         models.PaymentRequest{Method: models.MethodCard, Amount: 1_500_000},
			hour:        12,
			wantScore:   2,
			wantLevel:   models.RiskLevelLow,
			wantFactors: []string{"high_amount"},
		},
		{
			name:        "very high amount stacks",
			req:         models.PaymentRequest{Method: models.MethodCard, Amount: 6_000_000},
			hour:        12,
			wantScore:   7,
			wantLevel:   models.RiskLevelMedium,
			wantFactors: []string{"high_amount", "very_high_amount"},
		},
		{
			name:        "very high amount at night crosses high threshold",
			req:         models.PaymentRequest{Method: models.MethodCard, Amount: 6_000_000},
			hour:        2,
			wantScore:   8,
			wantLevel:   models.RiskLevelHigh,
			wantFactors: []string{"high_amount", "very_high_amount", "unusual_time"},
		},
		{
			name:        "crypto adds a point",
			req:         models.PaymentRequest{Method: models.MethodCrypto, Amount: 50_000},
			hour:        12,
			wantScore:   1,
			wantLevel:   models.RiskLevelLow,
			wantFactors: []string{"crypto_payment"},
		},
		{
			name:        "early morning is unusual",
			req:         models.PaymentRequest{Method: models.MethodCash, Amount: 10_000},
			hour:        5,
			wantScore:   1,
			wantLevel:   models.RiskLevelLow,
			wantFactors: []string{"unusual_time"},
		},
		{
			name:        "six in the morning is normal",
			req:         models.PaymentRequest{Method: models.MethodCash, Amount: 10_000},
			hour:        6,
			wantScore:   0,
			wantLevel:   models.RiskLevelLow,
			wantFactors: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(&tt.req, at(tt.hour))
			if got.Score != tt.wantScore {
				t.Errorf("Score() score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Level != tt.wantLevel {
				t.Errorf("Score() level = %v, want %v", got.Level, tt.wantLevel)
			}
			if !reflect.DeepEqual(got.Factors, tt.wantFactors) {
				t.Errorf("Score() factors = %v, want %v", got.Factors, tt.wantFactors)
			}
		})
	}
}

func TestScoreIsPure(t *testing.T) {
	req := models.PaymentRequest{Method: models.MethodCrypto, Amount: 6_000_000}
	now := at(3)

	first := Score(&req, now)
	second := Score(&req, now)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Score() not deterministic: %+v then %+v", first, second)
	}
}
