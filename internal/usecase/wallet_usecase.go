package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
)

// WalletUseCase is the balance mutation engine. Every operation is a
// validate-lock-mutate-record sequence executed inside one database
// transaction, retried on lock contention.
type WalletUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
	outboxRepo  OutboxRepository
	retrier     Retrier
	idGen       IDGenerator
	cache       Cache
}

// NewWalletUseCase creates a new WalletUseCase. outboxRepo and cache
// may be nil; events and cache invalidation are then skipped.
func NewWalletUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	ledgerRepo LedgerRepository,
	outboxRepo OutboxRepository,
	retrier Retrier,
	idGen IDGenerator,
	cache Cache,
) *WalletUseCase {
	return &WalletUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		outboxRepo:  outboxRepo,
		retrier:     retrier,
		idGen:       idGen,
		cache:       cache,
	}
}

// TopUpInput represents input for crediting an account.
type TopUpInput struct {
	AccountRef string
	Amount     decimal.Decimal
}

// TopUp credits an account. There is no balance precondition: once the
// amount validates, the operation cannot be blocked by balance state.
func (uc *WalletUseCase) TopUp(ctx context.Context, input TopUpInput) (*domain.LedgerRecord, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var record *domain.LedgerRecord

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByReferenceForUpdate(ctx, tx, input.AccountRef)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		record = &domain.LedgerRecord{
			ID:            uc.idGen.Generate(),
			Kind:          domain.RecordKindTopUp,
			AccountID:     account.ID,
			Amount:        input.Amount,
			BalanceBefore: account.Balance,
			BalanceAfter:  account.ApplyCredit(input.Amount),
			CreatedAt:     now,
		}

		if err := record.Validate(); err != nil {
			return err
		}

		if err := uc.ledgerRepo.Append(ctx, tx, record); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, record.BalanceAfter, now); err != nil {
			return err
		}

		if err := uc.writeEvent(ctx, tx, account.Reference, domain.EventTypeToppedUp, domain.ToppedUpEvent{
			RecordID:     record.ID,
			AccountRef:   account.Reference,
			Amount:       record.Amount.String(),
			BalanceAfter: record.BalanceAfter.String(),
		}, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateBalance(ctx, input.AccountRef)

	return record, nil
}

// PaymentInput represents input for debiting an account.
type PaymentInput struct {
	AccountRef string
	Amount     decimal.Decimal
	Remarks    string
}

// Pay debits an account after a sufficiency check against the locked
// balance.
func (uc *WalletUseCase) Pay(ctx context.Context, input PaymentInput) (*domain.LedgerRecord, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var record *domain.LedgerRecord

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByReferenceForUpdate(ctx, tx, input.AccountRef)
		if err != nil {
			return err
		}

		// Sufficiency must be checked against the locked balance, not
		// a stale read.
		if err := account.ValidateDebit(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()

		record = &domain.LedgerRecord{
			ID:            uc.idGen.Generate(),
			Kind:          domain.RecordKindPayment,
			AccountID:     account.ID,
			Amount:        input.Amount,
			Remarks:       domain.TruncateRemarks(input.Remarks),
			BalanceBefore: account.Balance,
			BalanceAfter:  account.ApplyDebit(input.Amount),
			CreatedAt:     now,
		}

		if err := record.Validate(); err != nil {
			return err
		}

		if err := uc.ledgerRepo.Append(ctx, tx, record); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, record.BalanceAfter, now); err != nil {
			return err
		}

		if err := uc.writeEvent(ctx, tx, account.Reference, domain.EventTypePaid, domain.PaidEvent{
			RecordID:     record.ID,
			AccountRef:   account.Reference,
			Amount:       record.Amount.String(),
			BalanceAfter: record.BalanceAfter.String(),
		}, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateBalance(ctx, input.AccountRef)

	return record, nil
}

// TransferInput represents input for moving money between two accounts.
type TransferInput struct {
	AccountRef string
	TargetRef  string
	Amount     decimal.Decimal
	Remarks    string
}

// Transfer debits the sender and credits the target atomically,
// appending a single transfer record carrying both snapshots. Account
// rows are locked in ascending internal-id order to prevent deadlock
// between opposing transfers.
func (uc *WalletUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.LedgerRecord, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.TargetRef == input.AccountRef {
		return nil, domain.ErrSelfTransfer
	}

	sender, err := uc.accountRepo.GetByReference(ctx, input.AccountRef)
	if err != nil {
		return nil, err
	}

	target, err := uc.accountRepo.GetByReference(ctx, input.TargetRef)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrTargetNotFound
		}
		return nil, err
	}

	if target.ID == sender.ID {
		return nil, domain.ErrSelfTransfer
	}

	ids := []string{sender.ID, target.ID}
	sort.Strings(ids)

	var record *domain.LedgerRecord

	err = uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return err
		}

		if len(accounts) != len(ids) {
			return domain.ErrTargetNotFound
		}

		var lockedSender, lockedTarget *domain.Account
		for _, a := range accounts {
			switch a.ID {
			case sender.ID:
				lockedSender = a
			case target.ID:
				lockedTarget = a
			}
		}

		if lockedSender == nil || lockedTarget == nil {
			return domain.ErrTargetNotFound
		}

		if err := lockedSender.ValidateDebit(input.Amount); err != nil {
			return err
		}

		now := time.Now().UTC()

		record = &domain.LedgerRecord{
			ID:                  uc.idGen.Generate(),
			Kind:                domain.RecordKindTransfer,
			AccountID:           lockedSender.ID,
			TargetAccountID:     lockedTarget.ID,
			Amount:              input.Amount,
			Remarks:             domain.TruncateRemarks(input.Remarks),
			BalanceBefore:       lockedSender.Balance,
			BalanceAfter:        lockedSender.ApplyDebit(input.Amount),
			TargetBalanceBefore: lockedTarget.Balance,
			TargetBalanceAfter:  lockedTarget.ApplyCredit(input.Amount),
			CreatedAt:           now,
		}

		if err := record.Validate(); err != nil {
			return err
		}

		if err := uc.ledgerRepo.Append(ctx, tx, record); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, lockedSender.ID, record.BalanceAfter, now); err != nil {
			return err
		}

		if err := uc.accountRepo.UpdateBalance(ctx, tx, lockedTarget.ID, record.TargetBalanceAfter, now); err != nil {
			return err
		}

		if err := uc.writeEvent(ctx, tx, sender.Reference, domain.EventTypeTransferred, domain.TransferredEvent{
			RecordID:  record.ID,
			SenderRef: sender.Reference,
			TargetRef: target.Reference,
			Amount:    record.Amount.String(),
		}, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateBalance(ctx, input.AccountRef)
	uc.invalidateBalance(ctx, input.TargetRef)

	return record, nil
}

// GetBalance returns the current balance for an account reference.
func (uc *WalletUseCase) GetBalance(ctx context.Context, accountRef string) (decimal.Decimal, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, balanceCacheKey(accountRef)); err == nil {
			if balance, err := decimal.NewFromString(cached); err == nil {
				return balance, nil
			}
		}
	}

	account, err := uc.accountRepo.GetByReference(ctx, accountRef)
	if err != nil {
		return decimal.Zero, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, balanceCacheKey(accountRef), account.Balance.String(), BalanceCacheTTL)
	}

	return account.Balance, nil
}

func (uc *WalletUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}
	return uc.retrier.Retry(ctx, operation)
}

func (uc *WalletUseCase) writeEvent(ctx context.Context, tx Transaction, aggregateID, eventType string, payload any, now time.Time) error {
	if uc.outboxRepo == nil {
		return nil
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   aggregateID,
		AggregateType: domain.AggregateTypeWallet,
		EventType:     eventType,
		Payload:       domain.MarshalPayload(payload),
		CreatedAt:     now,
	}

	return uc.outboxRepo.Create(ctx, tx, event)
}

// invalidateBalance drops the cached balance after a committed
// mutation. Best effort: the cache is never authoritative.
func (uc *WalletUseCase) invalidateBalance(ctx context.Context, accountRef string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, balanceCacheKey(accountRef))
}

func balanceCacheKey(accountRef string) string {
	return "balance:" + accountRef
}
