package validator

import (
	"strings"

	"payment-engine/internal/models"
)

// MaxAmount is the hard ceiling for a single authorization, in UGX.
const MaxAmount = 10_000_000

type ValidationResult struct {
	Valid     bool   `json:"valid"`
	Message   string `json:"message,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

// Validate performs structural and semantic checks on a payment request.
// Every violation is collected; the result carries them joined into one
// message. Unknown methods are not a violation here — they route to the
// generic processor downstream.
func Validate(req *models.PaymentRequest) ValidationResult {
	var problems []string

	if req.Method == "" {
		problems = append(problems, "payment method is required")
	}

	if req.Amount <= 0 {
		problems = append(problems, "amount must be greater than zero")
	}
	if req.Amount > MaxAmount {
		problems = append(problems, "amount exceeds the maximum of 10,000,000 UGX")
	}

	switch req.Method {
	case models.MethodCard:
		if req.CardToken == "" && req.CardNumber == "" {
			problems = append(problems, "card payments require a card token or card number")
		}
	case models.MethodCrypto:
		if req.CryptoCurrency == "" {
			problems = append(problems, "crypto payments require a currency")
		}
		if req.WalletAddress == "" {
			problems = append(problems, "crypto payments require a wallet address")
		}
	case models.MethodBankTransfer:
		if req.RoutingNumber == "" {
			problems = append(problems, "bank transfers require a routing number")
		}
		if req.AccountNumber == "" {
			problems = append(problems, "bank transfers require an account number")
		}
	}

	if len(problems) > 0 {
		return ValidationResult{
			Valid:     false,
			Message:   strings.Join(problems, "; "),
			ErrorCode: models.ErrValidation,
		}
	}

	return ValidationResult{Valid: true}
}
