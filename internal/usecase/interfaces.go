package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByReference(ctx context.Context, ref string) (*domain.Account, error)
	GetByPhoneNumber(ctx context.Context, phone string) (*domain.Account, error)
	GetByReferenceForUpdate(ctx context.Context, tx Transaction, ref string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateProfile(ctx context.Context, account *domain.Account) error
}

// LedgerRepository defines data access for ledger records. Append is
// the only write: records are immutable once inserted.
type LedgerRepository interface {
	Append(ctx context.Context, tx Transaction, record *domain.LedgerRecord) error
	ListTopUpsByAccount(ctx context.Context, accountID string) ([]*domain.LedgerRecord, error)
	ListPaymentsByAccount(ctx context.Context, accountID string) ([]*domain.LedgerRecord, error)
	ListTransfersBySender(ctx context.Context, accountID string) ([]*domain.LedgerRecord, error)
	ListTransfersByTarget(ctx context.Context, accountID string) ([]*domain.LedgerRecord, error)
	SumByAccount(ctx context.Context, accountID string) (credits, debits decimal.Decimal, err error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient contention errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique internal IDs.
type IDGenerator interface {
	Generate() string
}

// ReferenceGenerator generates external account references.
type ReferenceGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
