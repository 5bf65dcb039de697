package giftcard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"payment-engine/internal/redisclient"
)

var (
	// ErrNotFound is returned when a card number has no entry in the store.
	ErrNotFound = errors.New("gift card not found")
	// ErrInactive is returned when a card exists but cannot be redeemed.
	ErrInactive = errors.New("gift card inactive")
	// ErrInsufficientBalance is returned when a card cannot cover the
	// requested amount.
	ErrInsufficientBalance = errors.New("insufficient gift card balance")
)

// Entry is the stored-value state for one card.
type Entry struct {
	Balance  float64 `json:"balance"`
	IsActive bool    `json:"is_active"`
}

// Store is the external stored-value lookup the registry reads and writes
// through.
type Store interface {
	Lookup(ctx context.Context, cardNumber string) (Entry, error)
	SetBalance(ctx context.Context, cardNumber string, balance float64) error
}

type ValidationResult struct {
	IsValid      bool    `json:"is_valid"`
	Balance      float64 `json:"balance"`
	MaskedNumber string  `json:"masked_number"`
}

type Registry struct {
	mu    sync.Mutex
	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Validate reports whether a card can be redeemed and its current balance.
// TODO: the PIN is accepted but never checked against the stored entry;
// pending a product decision on stored-value PIN verification.
func (r *Registry) Validate(ctx context.Context, cardNumber, pin string) (ValidationResult, error) {
	entry, err := r.store.Lookup(ctx, cardNumber)
	if err != nil {
		return ValidationResult{MaskedNumber: Mask(cardNumber)}, err
	}

	return ValidationResult{
		IsValid:      entry.IsActive,
		Balance:      entry.Balance,
		MaskedNumber: Mask(cardNumber),
	}, nil
}

// Redeem checks a card and debits it in one step. The registry mutex covers
// the check-then-debit window, since the stores' own locking only protects
// individual reads and writes; without it two concurrent redemptions could
// both pass the balance check and overdraw the card. On
// ErrInsufficientBalance the returned previous balance reports what is
// available.
func (r *Registry) Redeem(ctx context.Context, cardNumber string, amount float64) (previous, remaining float64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.store.Lookup(ctx, cardNumber)
	if err != nil {
		return 0, 0, err
	}
	if !entry.IsActive {
		return 0, 0, ErrInactive
	}
	if entry.Balance < amount {
		return entry.Balance, entry.Balance, ErrInsufficientBalance
	}

	remaining = entry.Balance - amount
	if err := r.store.SetBalance(ctx, cardNumber, remaining); err != nil {
		return 0, 0, fmt.Errorf("failed to update gift card balance: %w", err)
	}

	return entry.Balance, remaining, nil
}

// Mask hides all but the last four digits of a card number.
func Mask(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return strings.Repeat("*", len(cardNumber)-4) + cardNumber[len(cardNumber)-4:]
}

// MemoryStore is a mutex-guarded in-memory store used for development wiring
// and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	cards map[string]Entry
}

func NewMemoryStore(cards map[string]Entry) *MemoryStore {
	if cards == nil {
		cards = make(map[string]Entry)
	}
	return &MemoryStore{cards: cards}
}

func (s *MemoryStore) Lookup(_ context.Context, cardNumber string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cards[cardNumber]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

func (s *MemoryStore) SetBalance(_ context.Context, cardNumber string, balance float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.cards[cardNumber]
	if !ok {
		return ErrNotFound
	}
	entry.Balance = balance
	s.cards[cardNumber] = entry
	return nil
}

// RedisStore keeps gift card entries as JSON values under giftcard:<number>.
type RedisStore struct {
	redis *redisclient.Client
}

func NewRedisStore(client *redisclient.Client) *RedisStore {
	return &RedisStore{redis: client}
}

func (s *RedisStore) Lookup(ctx context.Context, cardNumber string) (Entry, error) {
	data, err := s.redis.Get(ctx, s.key(cardNumber))
	if err != nil {
		return Entry{}, ErrNotFound
	}

	var entry Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return Entry{}, fmt.Errorf("corrupt gift card entry: %w", err)
	}
	return entry, nil
}

func (s *RedisStore) SetBalance(ctx context.Context, cardNumber string, balance float64) error {
	entry, err := s.Lookup(ctx, cardNumber)
	if err != nil {
		return err
	}

	entry.Balance = balance
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, s.key(cardNumber), data, 0*time.Second)
}

func (s *RedisStore) key(cardNumber string) string {
	return fmt.Sprintf("giftcard:%s", cardNumber)
}
