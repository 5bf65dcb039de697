package processor

import (
	"context"
	"strings"

	"payment-engine/internal/card"
	"payment-engine/internal/models"
)

// Deterministic decline triggers: any card number containing one of these
// substrings decisively maps to a decline code. This is the simulator's
// stand-in for acquirer test cards.
var cardDeclineTriggers = []struct {
	substring string
	errorCode string
	message   string
}{
	{"0000", models.ErrInsufficientFunds, "card declined: insufficient funds"},
	{"1111", models.ErrInvalidCard, "card declined: invalid card number"},
	{"2222", models.ErrExpiredCard, "card declined: card expired"},
	{"3333", models.ErrDoNotHonor, "card declined: do not honor"},
}

type CardProcessor struct {
	src FailureSource
}

func NewCardProcessor(src FailureSource) *CardProcessor {
	return &CardProcessor{src: src}
}

func (p *CardProcessor) Authorize(_ context.Context, req *models.PaymentRequest) models.AuthorizationOutcome {
	number := req.CardNumber
	if number == "" {
		number = req.CardToken
	}

	for _, trigger := range cardDeclineTriggers {
		if strings.Contains(number, trigger.substring) {
			return models.Declined(trigger.errorCode, trigger.message)
		}
	}

	elapsed := p.src.Latency(400, 1200)

	return models.Approved(newTransactionID(), newAuthCode(), "00", elapsed, map[string]interface{}{
		"card_brand": card.DetectBrand(number),
		"card_last4": card.Last4(number),
	})
}
