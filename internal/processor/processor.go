package processor

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"payment-engine/internal/giftcard"
	"payment-engine/internal/models"
)

// Processor is the common authorization contract. Each implementation is a
// self-contained simulator for one payment method and never calls another
// processor.
type Processor interface {
	Authorize(ctx context.Context, req *models.PaymentRequest) models.AuthorizationOutcome
}

// Registry maps payment methods to their processors. Built once at startup;
// methods without a dedicated processor fall through to the generic one.
type Registry struct {
	byMethod map[models.PaymentMethod]Processor
	generic  Processor
}

func NewRegistry(src FailureSource, cards *giftcard.Registry) *Registry {
	return &Registry{
		byMethod: map[models.PaymentMethod]Processor{
			models.MethodCard:          NewCardProcessor(src),
			models.MethodDigitalWallet: NewDigitalWalletProcessor(src),
			models.MethodCrypto:        NewCryptoProcessor(src),
			models.MethodBNPL:          NewBNPLProcessor(src),
			models.MethodBankTransfer:  NewBankTransferProcessor(src),
			models.MethodGiftCard:      NewGiftCardProcessor(src, cards),
			models.MethodCash:          NewCashProcessor(src),
		},
		generic: NewGenericProcessor(src),
	}
}

// For returns the processor for a method, or the generic processor for
// unrecognized methods.
func (r *Registry) For(method models.PaymentMethod) Processor {
	if p, ok := r.byMethod[method]; ok {
		return p
	}
	return r.generic
}

// newTransactionID generates a gateway-style transaction reference.
func newTransactionID() string {
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:16])
}

// newAuthCode generates a short approval code.
func newAuthCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
}
