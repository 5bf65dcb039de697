package processor

import (
	"context"
	"fmt"
	"time"

	"payment-engine/internal/models"
)

// Ugandan banks the simulated transfer rail settles with.
var supportedBanks = map[string]bool{
	"centenary": true,
	"stanbic":   true,
	"dfcu":      true,
	"equity":    true,
	"kcb":       true,
	"ncba":      true,
	"boa":       true,
}

const (
	bankFailureRate = 0.08
	// settlementLag is how long a transfer takes to clear after authorization.
	settlementLag = 3 * 24 * time.Hour
)

type BankTransferProcessor struct {
	src FailureSource
}

func NewBankTransferProcessor(src FailureSource) *BankTransferProcessor {
	return &BankTransferProcessor{src: src}
}

func (p *BankTransferProcessor) Authorize(_ context.Context, req *models.PaymentRequest) models.AuthorizationOutcome {
	// An absent bank code is tolerated; only an unrecognized one declines.
	if req.BankCode != "" && !supportedBanks[req.BankCode] {
		return models.Declined(models.ErrUnsupportedBank,
			fmt.Sprintf("bank %q is not supported", req.BankCode))
	}

	if p.src.ShouldFail(bankFailureRate) {
		return models.Declined(models.ErrAccountVerificationFailed, "account verification failed")
	}

	elapsed := p.src.Latency(600, 1500)

	return models.Approved(newTransactionID(), newAuthCode(), "00", elapsed, map[string]interface{}{
		"bank_reference":  "BNK-" + newAuthCode(),
		"settlement_date": time.Now().Add(settlementLag),
		"status":          "pending",
	})
}
