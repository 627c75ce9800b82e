package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a wallet holder: identity plus current balance.
// The balance is only ever mutated by the wallet use case inside a
// database transaction; reads elsewhere are snapshots.
type Account struct {
	ID          string
	Reference   string // external UUID, the only id exposed to clients
	PhoneNumber string
	FirstName   string
	LastName    string
	Address     string
	PINHash     string
	Balance     decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateDebit checks whether the account can be debited by amount
// without going negative.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDebit returns the balance after a debit of amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit of amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// FullName returns the display name for the account holder.
func (a *Account) FullName() string {
	if a.FirstName == "" {
		return a.LastName
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
