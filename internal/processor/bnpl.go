package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"payment-engine/internal/installment"
	"payment-engine/internal/models"
)

var supportedBNPLProviders = map[string]bool{
	"klarna":   true,
	"afterpay": true,
	"affirm":   true,
	"sezzle":   true,
}

const (
	bnplFailureRate = 0.15
	// defaultInstallmentCount applies when the request leaves the count unset.
	defaultInstallmentCount = 4
)

type BNPLProcessor struct {
	src FailureSource
}

func NewBNPLProcessor(src FailureSource) *BNPLProcessor {
	return &BNPLProcessor{src: src}
}

func (p *BNPLProcessor) Authorize(_ context.Context, req *models.PaymentRequest) models.AuthorizationOutcome {
	if !supportedBNPLProviders[req.BNPLProvider] {
		return models.Declined(models.ErrUnsupportedBNPLProvider,
			fmt.Sprintf("BNPL provider %q is not supported", req.BNPLProvider))
	}

	if p.src.ShouldFail(bnplFailureRate) {
		return models.Declined(models.ErrCreditCheckFailed, "provider credit check failed")
	}

	count := req.InstallmentCount
	if count < 1 {
		count = defaultInstallmentCount
	}

	// A planning failure is an internal fault, not a provider decline.
	plan, err := installment.Plan(decimal.NewFromFloat(req.Amount), count, time.Now())
	if err != nil {
		return models.Declined(models.ErrUnknown,
			fmt.Sprintf("could not build installment plan: %v", err))
	}

	elapsed := p.src.Latency(800, 2000)

	return models.Approved(newTransactionID(), newAuthCode(), "00", elapsed, map[string]interface{}{
		"provider":         req.BNPLProvider,
		"installment_plan": plan,
		"credit_score":     p.src.IntBetween(650, 850),
	})
}
