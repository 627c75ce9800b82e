package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInconsistentLedger is returned when the ledger records for an
	// account do not reproduce its stored balance.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: records do not sum to balance")
)

// AuditUseCase verifies the audit-trail property: for any account, the
// sum of credited amounts minus debited amounts across all ledger
// records equals the current balance.
type AuditUseCase struct {
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(accountRepo AccountRepository, ledgerRepo LedgerRepository) *AuditUseCase {
	return &AuditUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// AuditResult summarizes a per-account consistency check.
type AuditResult struct {
	AccountRef string
	Balance    decimal.Decimal
	Credits    decimal.Decimal
	Debits     decimal.Decimal
	Consistent bool
}

// CheckAccount recomputes the account balance from its ledger records.
func (uc *AuditUseCase) CheckAccount(ctx context.Context, accountRef string) (*AuditResult, error) {
	account, err := uc.accountRepo.GetByReference(ctx, accountRef)
	if err != nil {
		return nil, err
	}

	credits, debits, err := uc.ledgerRepo.SumByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	result := &AuditResult{
		AccountRef: account.Reference,
		Balance:    account.Balance,
		Credits:    credits,
		Debits:     debits,
		Consistent: credits.Sub(debits).Equal(account.Balance),
	}

	if !result.Consistent {
		return result, ErrInconsistentLedger
	}

	return result, nil
}
