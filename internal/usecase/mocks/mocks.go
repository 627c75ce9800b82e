package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc                  func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByReferenceFunc          func(ctx context.Context, ref string) (*domain.Account, error)
	GetByPhoneNumberFunc        func(ctx context.Context, phone string) (*domain.Account, error)
	GetByReferenceForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ref string) (*domain.Account, error)
	GetByIDsForUpdateFunc       func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc           func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateProfileFunc           func(ctx context.Context, account *domain.Account) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Add seeds an account into the mock store.
func (m *MockAccountRepository) Add(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *account
	m.accounts[account.ID] = &copied
	return nil
}

func (m *MockAccountRepository) GetByReference(ctx context.Context, ref string) (*domain.Account, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, ref)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Reference == ref {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByPhoneNumber(ctx context.Context, phone string) (*domain.Account, error) {
	if m.GetByPhoneNumberFunc != nil {
		return m.GetByPhoneNumberFunc(ctx, phone)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.PhoneNumber == phone {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, ref string) (*domain.Account, error) {
	if m.GetByReferenceForUpdateFunc != nil {
		return m.GetByReferenceForUpdateFunc(ctx, tx, ref)
	}
	return m.GetByReference(ctx, ref)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) UpdateProfile(ctx context.Context, account *domain.Account) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.accounts[account.ID]; ok {
		existing.FirstName = account.FirstName
		existing.LastName = account.LastName
		existing.Address = account.Address
		existing.UpdatedAt = account.UpdatedAt
	}
	return nil
}

// Get returns the stored account by internal id, for assertions.
func (m *MockAccountRepository) Get(id string) *domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accounts[id]
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	records []*domain.LedgerRecord

	AppendFunc func(ctx context.Context, tx usecase.Transaction, record *domain.LedgerRecord) error
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) Append(ctx context.Context, tx usecase.Transaction, record *domain.LedgerRecord) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *MockLedgerRepository) listByKind(accountID string, kind domain.RecordKind, bySender bool) []*domain.LedgerRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerRecord
	for _, r := range m.records {
		if r.Kind != kind {
			continue
		}
		if bySender && r.AccountID == accountID {
			out = append(out, r)
		}
		if !bySender && r.TargetAccountID == accountID {
			out = append(out, r)
		}
	}
	return out
}

func (m *MockLedgerRepository) ListTopUpsByAccount(ctx context.Context, accountID string) ([]*domain.LedgerRecord, error) {
	return m.listByKind(accountID, domain.RecordKindTopUp, true), nil
}

func (m *MockLedgerRepository) ListPaymentsByAccount(ctx context.Context, accountID string) ([]*domain.LedgerRecord, error) {
	return m.listByKind(accountID, domain.RecordKindPayment, true), nil
}

func (m *MockLedgerRepository) ListTransfersBySender(ctx context.Context, accountID string) ([]*domain.LedgerRecord, error) {
	return m.listByKind(accountID, domain.RecordKindTransfer, true), nil
}

func (m *MockLedgerRepository) ListTransfersByTarget(ctx context.Context, accountID string) ([]*domain.LedgerRecord, error) {
	return m.listByKind(accountID, domain.RecordKindTransfer, false), nil
}

func (m *MockLedgerRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	credits, debits := decimal.Zero, decimal.Zero
	for _, r := range m.records {
		switch {
		case r.Kind == domain.RecordKindTopUp && r.AccountID == accountID:
			credits = credits.Add(r.Amount)
		case r.Kind == domain.RecordKindPayment && r.AccountID == accountID:
			debits = debits.Add(r.Amount)
		case r.Kind == domain.RecordKindTransfer && r.AccountID == accountID:
			debits = debits.Add(r.Amount)
		case r.Kind == domain.RecordKindTransfer && r.TargetAccountID == accountID:
			credits = credits.Add(r.Amount)
		}
	}
	return credits, debits, nil
}

// Records returns a snapshot of appended records, for assertions.
func (m *MockLedgerRepository) Records() []*domain.LedgerRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.LedgerRecord, len(m.records))
	copy(out, m.records)
	return out
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// Events returns a snapshot of written events, for assertions.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.OutboxEvent, len(m.events))
	copy(out, m.events)
	return out
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator generates sequential ids.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// MockReferenceGenerator generates sequential references.
type MockReferenceGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockReferenceGenerator() *MockReferenceGenerator {
	return &MockReferenceGenerator{}
}

func (m *MockReferenceGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("ref-%04d", m.counter)
}

// PassthroughRetrier runs the operation once with no retry.
type PassthroughRetrier struct{}

func NewPassthroughRetrier() *PassthroughRetrier {
	return &PassthroughRetrier{}
}

func (r *PassthroughRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// MockCache is an in-memory cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string]string)}
}

func (c *MockCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.items[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("cache miss: %s", key)
}

func (c *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *MockCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// MockIdempotencyStore is an in-memory idempotency store.
type MockIdempotencyStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{items: make(map[string][]byte)}
}

func (s *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.items[key]; ok {
		return true, existing, nil
	}
	s.items[key] = response
	return false, nil, nil
}

func (s *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = response
	return nil
}
