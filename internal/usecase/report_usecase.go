package usecase

import (
	"context"
	"sort"

	"github.com/iho/gowallet/internal/domain"
)

// ReportUseCase merges ledger records of all kinds for an account into
// one chronologically ordered view. Read-only; it never participates in
// the mutation path.
type ReportUseCase struct {
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(accountRepo AccountRepository, ledgerRepo LedgerRepository) *ReportUseCase {
	return &ReportUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// ListTransactions returns every ledger record touching the account:
// top-ups, payments, outgoing transfers and incoming transfers, sorted
// by creation time descending. Ties are broken by record id descending;
// ids are ULIDs, so the secondary order is deterministic and itself
// time-based.
func (uc *ReportUseCase) ListTransactions(ctx context.Context, accountRef string) ([]*domain.LedgerRecord, error) {
	account, err := uc.accountRepo.GetByReference(ctx, accountRef)
	if err != nil {
		return nil, err
	}

	topUps, err := uc.ledgerRepo.ListTopUpsByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.ledgerRepo.ListPaymentsByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	outgoing, err := uc.ledgerRepo.ListTransfersBySender(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	incoming, err := uc.ledgerRepo.ListTransfersByTarget(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	records := make([]*domain.LedgerRecord, 0, len(topUps)+len(payments)+len(outgoing)+len(incoming))
	records = append(records, topUps...)
	records = append(records, payments...)
	records = append(records, outgoing...)
	records = append(records, incoming...)

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID > records[j].ID
	})

	return records, nil
}
