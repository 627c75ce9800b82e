package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

const accountColumns = `id, reference, phone_number, first_name, last_name, address, pin_hash, balance, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account inside the caller's transaction so the
// registration event in the outbox commits together with it.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := pgxTx.Exec(ctx, query,
		account.ID,
		account.Reference,
		account.PhoneNumber,
		account.FirstName,
		account.LastName,
		account.Address,
		account.PINHash,
		decimalToNumeric(account.Balance),
		account.CreatedAt,
		account.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrPhoneNumberTaken
	}

	return err
}

// GetByReference retrieves an account by its external reference.
func (r *AccountRepository) GetByReference(ctx context.Context, ref string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE reference = $1`

	return r.scanAccount(r.pool.QueryRow(ctx, query, ref))
}

// GetByPhoneNumber retrieves an account by phone number.
func (r *AccountRepository) GetByPhoneNumber(ctx context.Context, phone string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE phone_number = $1`

	return r.scanAccount(r.pool.QueryRow(ctx, query, phone))
}

// GetByReferenceForUpdate retrieves an account by reference with a FOR
// UPDATE row lock.
func (r *AccountRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, ref string) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE reference = $1 FOR UPDATE`

	return r.scanAccount(pgxTx.QueryRow(ctx, query, ref))
}

// GetByIDsForUpdate retrieves multiple accounts with FOR UPDATE locks.
// The ORDER BY id matches the caller's sorted lock order, so two
// opposing transfers always acquire row locks in the same sequence.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	rows, err := pgxTx.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// UpdateBalance sets the balance of an account. Must be called inside
// the transaction that locked the row.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`

	_, err := pgxTx.Exec(ctx, query, id, decimalToNumeric(balance), updatedAt)

	return err
}

// UpdateProfile updates the mutable profile fields. Balance and phone
// number are deliberately not part of this statement.
func (r *AccountRepository) UpdateProfile(ctx context.Context, account *domain.Account) error {
	query := `
		UPDATE accounts
		SET first_name = $2, last_name = $3, address = $4, updated_at = $5
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		account.ID,
		account.FirstName,
		account.LastName,
		account.Address,
		account.UpdatedAt,
	)

	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AccountRepository) scanAccount(row rowScanner) (*domain.Account, error) {
	account, err := scanAccountRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

func scanAccountRow(row rowScanner) (*domain.Account, error) {
	var (
		account domain.Account
		balance pgtype.Numeric
	)

	err := row.Scan(
		&account.ID,
		&account.Reference,
		&account.PhoneNumber,
		&account.FirstName,
		&account.LastName,
		&account.Address,
		&account.PINHash,
		&balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)

	return &account, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
