package processor

import (
	"context"
	"fmt"

	"payment-engine/internal/models"
)

var supportedWallets = map[string]bool{
	"apple_pay":    true,
	"google_pay":   true,
	"samsung_pay":  true,
	"paypal":       true,
	"mtn_momo":     true,
	"airtel_money": true,
}

// walletFailureRate models sporadic biometric/auth handshake failures.
const walletFailureRate = 0.05

type DigitalWalletProcessor struct {
	src FailureSource
}

func NewDigitalWalletProcessor(src FailureSource) *DigitalWalletProcessor {
	return &DigitalWalletProcessor{src: src}
}

func (p *DigitalWalletProcessor) Authorize(_ context.Context, req *models.PaymentRequest) models.AuthorizationOutcome {
	if !supportedWallets[req.WalletType] {
		return models.Declined(models.ErrUnsupportedWallet,
			fmt.Sprintf("wallet type %q is not supported", req.WalletType))
	}

	if p.src.ShouldFail(walletFailureRate) {
		return models.Declined(models.ErrWalletAuthFailed, "wallet authentication failed")
	}

	elapsed := p.src.Latency(300, 900)

	return models.Approved(newTransactionID(), newAuthCode(), "00", elapsed, map[string]interface{}{
		"wallet_transaction_id": "WLT-" + newAuthCode(),
		"wallet_type":           req.WalletType,
		"biometric_verified":    true,
	})
}
