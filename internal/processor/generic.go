package processor

import (
	"context"

	"payment-engine/internal/models"
)

// GenericProcessor approves any method without a dedicated simulator. It
// exists so unknown methods degrade to a plain authorization instead of an
// error.
type GenericProcessor struct {
	src FailureSource
}

func NewGenericProcessor(src FailureSource) *GenericProcessor {
	return &GenericProcessor{src: src}
}

func (p *GenericProcessor) Authorize(_ context.Context, req *models.PaymentRequest) models.AuthorizationOutcome {
	elapsed := p.src.Latency(300, 800)

	return models.Approved(newTransactionID(), newAuthCode(), "00", elapsed, map[string]interface{}{
		"method": string(req.Method),
	})
}
