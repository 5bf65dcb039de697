package processor

import (
	"context"
	"errors"
	"fmt"

	"payment-engine/internal/giftcard"
	"payment-engine/internal/models"
)

type GiftCardProcessor struct {
	src   FailureSource
	cards *giftcard.Registry
}

func NewGiftCardProcessor(src FailureSource, cards *giftcard.Registry) *GiftCardProcessor {
	return &GiftCardProcessor{src: src, cards: cards}
}

func (p *GiftCardProcessor) Authorize(ctx context.Context, req *models.PaymentRequest) models.AuthorizationOutcome {
	previous, remaining, err := p.cards.Redeem(ctx, req.GiftCardNumber, req.Amount)
	if errors.Is(err, giftcard.ErrInsufficientBalance) {
		out := models.Declined(models.ErrInsufficientGiftCardBalance,
			fmt.Sprintf("gift card balance %.0f is below the requested %.0f", previous, req.Amount))
		out.Metadata = map[string]interface{}{
			"available_balance": previous,
		}
		return out
	}
	if err != nil {
		return models.Declined(models.ErrInvalidGiftCard, "gift card is invalid or inactive")
	}

	elapsed := p.src.Latency(200, 600)

	return models.Approved(newTransactionID(), newAuthCode(), "00", elapsed, map[string]interface{}{
		"masked_number":    giftcard.Mask(req.GiftCardNumber),
		"previous_balance": previous,
		"new_balance":      remaining,
	})
}
