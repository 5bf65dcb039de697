package processor

import (
	"context"
	"fmt"

	"payment-engine/internal/models"
)

type CashProcessor struct {
	src FailureSource
}

func NewCashProcessor(src FailureSource) *CashProcessor {
	return &CashProcessor{src: src}
}

func (p *CashProcessor) Authorize(_ context.Context, req *models.PaymentRequest) models.AuthorizationOutcome {
	if req.CashReceived < req.Amount {
		return models.Declined(models.ErrInsufficientCash,
			fmt.Sprintf("cash received %.0f is below the amount due %.0f", req.CashReceived, req.Amount))
	}

	elapsed := p.src.Latency(50, 150)

	return models.Approved(newTransactionID(), newAuthCode(), "00", elapsed, map[string]interface{}{
		"cash_received": req.CashReceived,
		"change_given":  req.CashReceived - req.Amount,
	})
}
