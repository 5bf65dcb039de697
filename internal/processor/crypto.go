package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"payment-engine/internal/models"
)

var supportedCryptoCurrencies = map[string]bool{
	"bitcoin":  true,
	"ethereum": true,
	"usdc":     true,
	"usdt":     true,
}

const (
	cryptoFailureRate = 0.10
	// networkFeeRate is charged on top of the amount, 0.1%.
	networkFeeRate = 0.001
)

type CryptoProcessor struct {
	src FailureSource
}

func NewCryptoProcessor(src FailureSource) *CryptoProcessor {
	return &CryptoProcessor{src: src}
}

func (p *CryptoProcessor) Authorize(_ context.Context, req *models.PaymentRequest) models.AuthorizationOutcome {
	if !supportedCryptoCurrencies[req.CryptoCurrency] {
		return models.Declined(models.ErrUnsupportedCrypto,
			fmt.Sprintf("cryptocurrency %q is not supported", req.CryptoCurrency))
	}

	if p.src.ShouldFail(cryptoFailureRate) {
		return models.Declined(models.ErrNetworkCongestion, "blockchain network congested, transaction not confirmed")
	}

	elapsed := p.src.Latency(1500, 4000)

	expectedConfirmations := 12
	if req.CryptoCurrency == "bitcoin" {
		expectedConfirmations = 6
	}

	return models.Approved(newTransactionID(), newAuthCode(), "00", elapsed, map[string]interface{}{
		"blockchain_hash":        newBlockchainHash(),
		"network_fee":            req.Amount * networkFeeRate,
		"confirmations":          1,
		"expected_confirmations": expectedConfirmations,
		"currency":               req.CryptoCurrency,
	})
}

func newBlockchainHash() string {
	return "0x" + strings.ReplaceAll(uuid.New().String(), "-", "") + strings.ReplaceAll(uuid.New().String(), "-", "")
}
