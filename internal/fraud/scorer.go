// Fraud checks
package fraud

import (
	"time"

	"payment-engine/internal/models"
)

// Risk level thresholds.
const (
	highRiskThreshold   = 8
	mediumRiskThreshold = 4
)

type rule func(req *models.PaymentRequest, now time.Time, a *models.RiskAssessment)

var rules = []rule{
	checkHighAmount,
	checkVeryHighAmount,
	checkUnusualTime,
	checkCryptoMethod,
}

// Score computes a risk assessment for a request. The result is purely a
// function of the request and the hour of the supplied clock reading; no
// randomness and no shared state.
func Score(req *models.PaymentRequest, now time.Time) models.RiskAssessment {
	assessment := models.RiskAssessment{
		Score:   0,
		Level:   models.RiskLevelLow,
		Factors: []string{},
	}

	for _, r := range rules {
		r(req, now, &assessment)
	}

	assessment.Level = levelFor(assessment.Score)
	return assessment
}

func checkHighAmount(req *models.PaymentRequest, _ time.Time, a *models.RiskAssessment) {
	if req.Amount > 1_000_000 {
		a.Score += 2
		a.Factors = append(a.Factors, "high_amount")
	}
}

// checkVeryHighAmount stacks on top of checkHighAmount for amounts that also
// clear the higher bar.
func checkVeryHighAmount(req *models.PaymentRequest, _ time.Time, a *models.RiskAssessment) {
	if req.Amount > 5_000_000 {
		a.Score += 5
		a.Factors = append(a.Factors, "very_high_amount")
	}
}

func checkUnusualTime(_ *models.PaymentRequest, now time.Time, a *models.RiskAssessment) {
	hour := now.Hour()
	if hour < 6 || hour > 23 {
		a.Score += 1
		a.Factors = append(a.Factors, "unusual_time")
	}
}

func checkCryptoMethod(req *models.PaymentRequest, _ time.Time, a *models.RiskAssessment) {
	if req.Method == models.MethodCrypto {
		a.Score += 1
		a.Factors = append(a.Factors, "crypto_payment")
	}
}

func levelFor(score int) models.RiskLevel {
	switch {
	case score >= highRiskThreshold:
		return models.RiskLevelHigh
	case score >= mediumRiskThreshold:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}
