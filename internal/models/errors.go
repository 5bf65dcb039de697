package models

// Engine-level error codes.
const (
	ErrValidation    = "VALIDATION_ERROR"
	ErrFraudDetected = "FRAUD_DETECTED"
	ErrUnknown       = "UNKNOWN_ERROR"
)

// Method-specific decline codes.
const (
	ErrInsufficientFunds           = "INSUFFICIENT_FUNDS"
	ErrInvalidCard                 = "INVALID_CARD"
	ErrExpiredCard                 = "EXPIRED_CARD"
	ErrDoNotHonor                  = "DO_NOT_HONOR"
	ErrUnsupportedWallet           = "UNSUPPORTED_WALLET"
	ErrWalletAuthFailed            = "WALLET_AUTH_FAILED"
	ErrUnsupportedCrypto           = "UNSUPPORTED_CRYPTO"
	ErrNetworkCongestion           = "NETWORK_CONGESTION"
	ErrUnsupportedBNPLProvider     = "UNSUPPORTED_BNPL_PROVIDER"
	ErrCreditCheckFailed           = "CREDIT_CHECK_FAILED"
	ErrUnsupportedBank             = "UNSUPPORTED_BANK"
	ErrAccountVerificationFailed   = "ACCOUNT_VERIFICATION_FAILED"
	ErrInvalidGiftCard             = "INVALID_GIFT_CARD"
	ErrInsufficientGiftCardBalance = "INSUFFICIENT_GIFT_CARD_BALANCE"
	ErrInsufficientCash            = "INSUFFICIENT_CASH"
)

// IsRetryable reports whether a caller could plausibly retry the same
// instrument after this decline. Everything else is terminal for the attempt.
func IsRetryable(code string) bool {
	switch code {
	case ErrNetworkCongestion, ErrWalletAuthFailed:
		return true
	default:
		return false
	}
}
