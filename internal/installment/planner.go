package installment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"payment-engine/internal/models"
)

// Installments are spaced two weeks apart, with the first due immediately.
const cadence = 14 * 24 * time.Hour

// Plan splits a total into count scheduled installments. Each of the first
// count-1 installments carries ceil(total/count, 2dp); the last installment
// absorbs the rounding remainder so the amounts always sum to the total
// exactly.
func Plan(total decimal.Decimal, count int, now time.Time) (*models.InstallmentPlan, error) {
	if count < 1 {
		return nil, fmt.Errorf("installment count must be at least 1, got %d", count)
	}
	if total.Sign() <= 0 {
		return nil, fmt.Errorf("installment total must be positive, got %s", total)
	}

	base := total.Div(decimal.NewFromInt(int64(count))).RoundCeil(2)

	installments := make([]models.Installment, 0, count)
	for i := 0; i < count; i++ {
		amount := base
		if i == count-1 {
			amount = total.Sub(base.Mul(decimal.NewFromInt(int64(count - 1))))
		}

		status := models.InstallmentStatusPending
		if i == 0 {
			status = models.InstallmentStatusDue
		}

		installments = append(installments, models.Installment{
			Index:   i,
			Amount:  amount,
			DueDate: now.Add(time.Duration(i) * cadence),
			Status:  status,
		})
	}

	return &models.InstallmentPlan{
		TotalAmount:  total,
		Count:        count,
		Installments: installments,
	}, nil
}
