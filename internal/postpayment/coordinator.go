package postpayment

import (
	"context"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"payment-engine/internal/models"
	"payment-engine/internal/redisclient"
)

// One loyalty point per 1,000 UGX spent, rounded down.
const pointsDivisor = 1000

// LoyaltyLedger accrues points for enrolled customers.
type LoyaltyLedger interface {
	Accrue(ctx context.Context, customerID string, points int64) error
}

// Coordinator runs the best-effort side effects after a payment is recorded:
// loyalty accrual and a receipt-generation stub. Failures here are logged and
// swallowed; an already-successful payment is never invalidated by them.
type Coordinator struct {
	loyalty LoyaltyLedger
	logger  *zap.Logger
}

func New(loyalty LoyaltyLedger, logger *zap.Logger) *Coordinator {
	return &Coordinator{loyalty: loyalty, logger: logger}
}

// Run executes both post-payment actions. The two actions fail independently,
// and a panicking action is contained here so it can never reach the payment
// result.
func (c *Coordinator) Run(ctx context.Context, req *models.PaymentRequest, transactionID string) {
	c.guard("loyalty_accrual", transactionID, func() { c.accrueLoyalty(ctx, req) })
	c.guard("receipt_generation", transactionID, func() { c.issueReceipt(req, transactionID) })
}

func (c *Coordinator) guard(action, transactionID string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("post-payment action panicked",
				zap.String("action", action),
				zap.String("transaction_id", transactionID),
				zap.Any("panic", r))
		}
	}()
	fn()
}

func (c *Coordinator) accrueLoyalty(ctx context.Context, req *models.PaymentRequest) {
	if !req.LoyaltyEnrolled || req.CustomerID == "" {
		return
	}

	points := int64(math.Floor(req.Amount / pointsDivisor))
	if points <= 0 {
		return
	}

	if err := c.loyalty.Accrue(ctx, req.CustomerID, points); err != nil {
		c.logger.Warn("loyalty accrual failed",
			zap.Error(err),
			zap.String("customer_id", req.CustomerID),
			zap.Int64("points", points))
		return
	}

	c.logger.Info("loyalty points accrued",
		zap.String("customer_id", req.CustomerID),
		zap.Int64("points", points))
}

func (c *Coordinator) issueReceipt(req *models.PaymentRequest, transactionID string) {
	// Receipt generation stub; a real implementation would hand off to a
	// rendering/delivery service keyed by the transaction id.
	c.logger.Info("receipt queued",
		zap.String("transaction_id", transactionID),
		zap.String("method", string(req.Method)),
		zap.Float64("amount", req.Amount))
}

// RedisLoyaltyLedger keeps running totals under loyalty:<customer>.
type RedisLoyaltyLedger struct {
	redis *redisclient.Client
}

func NewRedisLoyaltyLedger(client *redisclient.Client) *RedisLoyaltyLedger {
	return &RedisLoyaltyLedger{redis: client}
}

func (l *RedisLoyaltyLedger) Accrue(ctx context.Context, customerID string, points int64) error {
	_, err := l.redis.IncrBy(ctx, fmt.Sprintf("loyalty:%s", customerID), points)
	return err
}

// MemoryLoyaltyLedger is an in-memory ledger for tests and development.
type MemoryLoyaltyLedger struct {
	mu     sync.Mutex
	totals map[string]int64
}

func NewMemoryLoyaltyLedger() *MemoryLoyaltyLedger {
	return &MemoryLoyaltyLedger{totals: make(map[string]int64)}
}

func (l *MemoryLoyaltyLedger) Accrue(_ context.Context, customerID string, points int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.totals[customerID] += points
	return nil
}

// Balance reports a customer's accumulated points. Test helper.
func (l *MemoryLoyaltyLedger) Balance(customerID string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totals[customerID]
}
