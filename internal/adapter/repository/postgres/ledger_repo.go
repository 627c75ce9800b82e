package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository on top of the
// three record tables. Each record kind has its own table so the schema
// can enforce kind-specific columns; the domain type is the union.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// Append inserts a record into the table matching its kind. Records are
// never updated or deleted afterwards.
func (r *LedgerRepository) Append(ctx context.Context, tx usecase.Transaction, record *domain.LedgerRecord) error {
	pgxTx := tx.(*Tx).PgxTx()

	switch record.Kind {
	case domain.RecordKindTopUp:
		query := `
			INSERT INTO top_ups (id, account_id, amount, balance_before, balance_after, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err := pgxTx.Exec(ctx, query,
			record.ID,
			record.AccountID,
			decimalToNumeric(record.Amount),
			decimalToNumeric(record.BalanceBefore),
			decimalToNumeric(record.BalanceAfter),
			record.CreatedAt,
		)
		return err

	case domain.RecordKindPayment:
		query := `
			INSERT INTO payments (id, account_id, amount, remarks, balance_before, balance_after, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := pgxTx.Exec(ctx, query,
			record.ID,
			record.AccountID,
			decimalToNumeric(record.Amount),
			record.Remarks,
			decimalToNumeric(record.BalanceBefore),
			decimalToNumeric(record.BalanceAfter),
			record.CreatedAt,
		)
		return err

	case domain.RecordKindTransfer:
		query := `
			INSERT INTO transfers (
				id, account_id, target_account_id, amount, remarks,
				balance_before, balance_after,
				target_balance_before, target_balance_after, created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		_, err := pgxTx.Exec(ctx, query,
			record.ID,
			record.AccountID,
			record.TargetAccountID,
			decimalToNumeric(record.Amount),
			record.Remarks,
			decimalToNumeric(record.BalanceBefore),
			decimalToNumeric(record.BalanceAfter),
			decimalToNumeric(record.TargetBalanceBefore),
			decimalToNumeric(record.TargetBalanceAfter),
			record.CreatedAt,
		)
		return err
	}

	return fmt.Errorf("%w: %s", domain.ErrUnknownRecordKind, record.Kind)
}

// ListTopUpsByAccount returns all top up records for an account.
func (r *LedgerRepository) ListTopUpsByAccount(ctx context.Context, accountID string) ([]*domain.LedgerRecord, error) {
	query := `
		SELECT id, account_id, amount, balance_before, balance_after, created_at
		FROM top_ups
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.LedgerRecord
	for rows.Next() {
		record := &domain.LedgerRecord{Kind: domain.RecordKindTopUp}
		var amount, before, after pgtype.Numeric

		err := rows.Scan(&record.ID, &record.AccountID, &amount, &before, &after, &record.CreatedAt)
		if err != nil {
			return nil, err
		}

		record.Amount = numericToDecimal(amount)
		record.BalanceBefore = numericToDecimal(before)
		record.BalanceAfter = numericToDecimal(after)
		records = append(records, record)
	}

	return records, rows.Err()
}

// ListPaymentsByAccount returns all payment records for an account.
func (r *LedgerRepository) ListPaymentsByAccount(ctx context.Context, accountID string) ([]*domain.LedgerRecord, error) {
	query := `
		SELECT id, account_id, amount, remarks, balance_before, balance_after, created_at
		FROM payments
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.LedgerRecord
	for rows.Next() {
		record := &domain.LedgerRecord{Kind: domain.RecordKindPayment}
		var amount, before, after pgtype.Numeric

		err := rows.Scan(&record.ID, &record.AccountID, &amount, &record.Remarks, &before, &after, &record.CreatedAt)
		if err != nil {
			return nil, err
		}

		record.Amount = numericToDecimal(amount)
		record.BalanceBefore = numericToDecimal(before)
		record.BalanceAfter = numericToDecimal(after)
		records = append(records, record)
	}

	return records, rows.Err()
}

// ListTransfersBySender returns transfers sent by an account.
func (r *LedgerRepository) ListTransfersBySender(ctx context.Context, accountID string) ([]*domain.LedgerRecord, error) {
	return r.listTransfers(ctx, `account_id = $1`, accountID)
}

// ListTransfersByTarget returns transfers received by an account.
func (r *LedgerRepository) ListTransfersByTarget(ctx context.Context, accountID string) ([]*domain.LedgerRecord, error) {
	return r.listTransfers(ctx, `target_account_id = $1`, accountID)
}

func (r *LedgerRepository) listTransfers(ctx context.Context, where string, accountID string) ([]*domain.LedgerRecord, error) {
	query := `
		SELECT id, account_id, target_account_id, amount, remarks,
		       balance_before, balance_after,
		       target_balance_before, target_balance_after, created_at
		FROM transfers
		WHERE ` + where + `
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.LedgerRecord
	for rows.Next() {
		record, err := scanTransferRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func scanTransferRow(row pgx.Row) (*domain.LedgerRecord, error) {
	record := &domain.LedgerRecord{Kind: domain.RecordKindTransfer}
	var amount, before, after, targetBefore, targetAfter pgtype.Numeric

	err := row.Scan(
		&record.ID,
		&record.AccountID,
		&record.TargetAccountID,
		&amount,
		&record.Remarks,
		&before,
		&after,
		&targetBefore,
		&targetAfter,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Amount = numericToDecimal(amount)
	record.BalanceBefore = numericToDecimal(before)
	record.BalanceAfter = numericToDecimal(after)
	record.TargetBalanceBefore = numericToDecimal(targetBefore)
	record.TargetBalanceAfter = numericToDecimal(targetAfter)

	return record, nil
}

// SumByAccount totals credits and debits across all three tables.
// COALESCE keeps accounts with no history at zero instead of NULL.
func (r *LedgerRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(amount) FROM top_ups WHERE account_id = $1), 0)
			+ COALESCE((SELECT SUM(amount) FROM transfers WHERE target_account_id = $1), 0) AS credits,
			COALESCE((SELECT SUM(amount) FROM payments WHERE account_id = $1), 0)
			+ COALESCE((SELECT SUM(amount) FROM transfers WHERE account_id = $1), 0) AS debits
	`

	var credits, debits pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&credits, &debits); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(credits), numericToDecimal(debits), nil
}
