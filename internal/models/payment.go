package models

import "time"

type PaymentMethod string

const (
	MethodCard          PaymentMethod = "card"
	MethodDigitalWallet PaymentMethod = "digital_wallet"
	MethodCrypto        PaymentMethod = "crypto"
	MethodBNPL          PaymentMethod = "bnpl"
	MethodBankTransfer  PaymentMethod = "bank_transfer"
	MethodGiftCard      PaymentMethod = "gift_card"
	MethodCash          PaymentMethod = "cash"
	MethodOther         PaymentMethod = "other"
)

// PaymentRequest is the immutable input for one checkout attempt. Amounts
// are in UGX.
type PaymentRequest struct {
	Method           PaymentMethod `json:"method" binding:"required"`
	Amount           float64       `json:"amount" binding:"required,gt=0"`
	CustomerID       string        `json:"customer_id"`
	LoyaltyEnrolled  bool          `json:"loyalty_enrolled"`
	CardNumber       string        `json:"card_number,omitempty"`
	CardToken        string        `json:"card_token,omitempty"`
	WalletType       string        `json:"wallet_type,omitempty"`
	CryptoCurrency   string        `json:"crypto_currency,omitempty"`
	WalletAddress    string        `json:"wallet_address,omitempty"`
	BNPLProvider     string        `json:"bnpl_provider,omitempty"`
	InstallmentCount int           `json:"installment_count,omitempty"`
	BankCode         string        `json:"bank_code,omitempty"`
	AccountNumber    string        `json:"account_number,omitempty"`
	RoutingNumber    string        `json:"routing_number,omitempty"`
	GiftCardNumber   string        `json:"gift_card_number,omitempty"`
	GiftCardPIN      string        `json:"gift_card_pin,omitempty"`
	CashReceived     float64       `json:"cash_received,omitempty"`
}

// AuthorizationOutcome is what a method processor returns: an approval with
// gateway metadata, or a structured decline.
type AuthorizationOutcome struct {
	Success          bool                   `json:"success"`
	TransactionID    string                 `json:"transaction_id,omitempty"`
	AuthCode         string                 `json:"auth_code,omitempty"`
	ResponseCode     string                 `json:"response_code,omitempty"`
	ProcessingTimeMs int                    `json:"processing_time_ms,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
	ErrorCode        string                 `json:"error_code,omitempty"`
	Message          string                 `json:"message,omitempty"`
	Retryable        bool                   `json:"retryable,omitempty"`
}

// Approved builds a successful outcome.
func Approved(transactionID, authCode, responseCode string, processingMs int, metadata map[string]interface{}) AuthorizationOutcome {
	return AuthorizationOutcome{
		Success:          true,
		TransactionID:    transactionID,
		AuthCode:         authCode,
		ResponseCode:     responseCode,
		ProcessingTimeMs: processingMs,
		Metadata:         metadata,
	}
}

// Declined builds a failed outcome. Retryability is derived from the code.
func Declined(errorCode, message string) AuthorizationOutcome {
	return AuthorizationOutcome{
		Success:   false,
		ErrorCode: errorCode,
		Message:   message,
		Retryable: IsRetryable(errorCode),
	}
}

// PaymentResult is the structured result the orchestrator returns to the
// caller. Nothing below the orchestrator throws past its boundary.
type PaymentResult struct {
	Success              bool                   `json:"success"`
	RecordID             string                 `json:"record_id,omitempty"`
	TransactionID        string                 `json:"transaction_id,omitempty"`
	AuthCode             string                 `json:"auth_code,omitempty"`
	ResponseCode         string                 `json:"response_code,omitempty"`
	ProcessingTimeMs     int                    `json:"processing_time_ms,omitempty"`
	Metadata             map[string]interface{} `json:"metadata,omitempty"`
	Fraud                *RiskAssessment        `json:"fraud,omitempty"`
	ErrorCode            string                 `json:"error_code,omitempty"`
	Message              string                 `json:"message,omitempty"`
	Retryable            bool                   `json:"retryable,omitempty"`
	RequiresManualReview bool                   `json:"requires_manual_review,omitempty"`
}

type RecordStatus string

const (
	RecordStatusCompleted RecordStatus = "completed"
	RecordStatusRefunded  RecordStatus = "refunded"
	RecordStatusRefund    RecordStatus = "refund"
)

// PaymentRecord is the persisted entity for a successful authorization.
// Records are immutable once written; a refund appends a new negative-amount
// record linked to the original instead of mutating it.
type PaymentRecord struct {
	ID              string                 `json:"id" db:"id"`
	Method          PaymentMethod          `json:"method" db:"method"`
	Amount          float64                `json:"amount" db:"amount"`
	TransactionID   string                 `json:"transaction_id" db:"transaction_id"`
	AuthCode        string                 `json:"auth_code" db:"auth_code"`
	ResponseCode    string                 `json:"response_code" db:"response_code"`
	FraudScore      int                    `json:"fraud_score" db:"fraud_score"`
	CardBrand       string                 `json:"card_brand,omitempty" db:"card_brand"`
	CardLast4       string                 `json:"card_last4,omitempty" db:"card_last4"`
	Status          RecordStatus           `json:"status" db:"status"`
	LinkedPaymentID string                 `json:"linked_payment_id,omitempty" db:"linked_payment_id"`
	RefundReason    string                 `json:"refund_reason,omitempty" db:"refund_reason"`
	Metadata        map[string]interface{} `json:"metadata,omitempty" db:"metadata"`
	CreatedAt       time.Time              `json:"created_at" db:"created_at"`
}

// MetricsSample is one entry in the engine's process-local analytics buffer.
// The buffer is not a system of record.
type MetricsSample struct {
	Method           PaymentMethod `json:"method"`
	Amount           float64       `json:"amount"`
	ProcessingTimeMs int           `json:"processing_time_ms"`
	Success          bool          `json:"success"`
	CardBrand        string        `json:"card_brand,omitempty"`
	Timestamp        time.Time     `json:"timestamp"`
}

// Database schema
const PaymentRecordSchema = `
CREATE TABLE IF NOT EXISTS payment_records (
    id VARCHAR(36) PRIMARY KEY,
    method VARCHAR(20) NOT NULL,
    amount DECIMAL(19, 4) NOT NULL,
    transaction_id VARCHAR(64) NOT NULL,
    auth_code VARCHAR(32),
    response_code VARCHAR(8),
    fraud_score INT NOT NULL DEFAULT 0,
    card_brand VARCHAR(20),
    card_last4 VARCHAR(4),
    status VARCHAR(20) NOT NULL,
    linked_payment_id VARCHAR(36),
    refund_reason TEXT,
    metadata JSONB,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`
