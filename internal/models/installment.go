package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InstallmentStatus string

const (
	InstallmentStatusDue     InstallmentStatus = "due"
	InstallmentStatusPending InstallmentStatus = "pending"
)

type Installment struct {
	Index   int               `json:"index"`
	Amount  decimal.Decimal   `json:"amount"`
	DueDate time.Time         `json:"due_date"`
	Status  InstallmentStatus `json:"status"`
}

// InstallmentPlan is an ordered schedule of partial payments. The installment
// amounts sum to TotalAmount exactly; the last slot absorbs any rounding
// remainder.
type InstallmentPlan struct {
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Count        int             `json:"count"`
	Installments []Installment   `json:"installments"`
}
