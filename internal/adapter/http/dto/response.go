package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

// AccountResponse represents an account in API responses. Internal IDs
// and the PIN hash never appear on the wire.
type AccountResponse struct {
	Reference   string          `json:"reference"`
	PhoneNumber string          `json:"phone_number"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Address     string          `json:"address"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		Reference:   a.Reference,
		PhoneNumber: a.PhoneNumber,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Address:     a.Address,
		Balance:     a.Balance,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// TokenResponse represents a successful login.
type TokenResponse struct {
	Token   string           `json:"token"`
	Account *AccountResponse `json:"account"`
}

// TransactionResponse represents one ledger record as seen by the
// requesting account.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Direction     string          `json:"direction"`
	Amount        decimal.Decimal `json:"amount"`
	Remarks       string          `json:"remarks,omitempty"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a ledger record to the view of the
// given account: direction and snapshot depend on which side of a
// transfer the viewer is on.
func TransactionFromDomain(r *domain.LedgerRecord, accountID string) *TransactionResponse {
	before, after := r.Snapshot(accountID)

	return &TransactionResponse{
		ID:            r.ID,
		Kind:          string(r.Kind),
		Direction:     string(r.Direction(accountID)),
		Amount:        r.Amount,
		Remarks:       r.Remarks,
		BalanceBefore: before,
		BalanceAfter:  after,
		CreatedAt:     r.CreatedAt,
	}
}

// TransactionsFromDomain converts ledger records to responses.
func TransactionsFromDomain(records []*domain.LedgerRecord, accountID string) []*TransactionResponse {
	result := make([]*TransactionResponse, len(records))
	for i, r := range records {
		result[i] = TransactionFromDomain(r, accountID)
	}
	return result
}

// BalanceResponse represents the current wallet balance.
type BalanceResponse struct {
	Reference string          `json:"reference"`
	Balance   decimal.Decimal `json:"balance"`
}

// AuditResponse represents a ledger consistency check.
type AuditResponse struct {
	Reference  string          `json:"reference"`
	Balance    decimal.Decimal `json:"balance"`
	Credits    decimal.Decimal `json:"credits"`
	Debits     decimal.Decimal `json:"debits"`
	Consistent bool            `json:"consistent"`
}

// AuditFromResult converts an audit result to a response.
func AuditFromResult(r *usecase.AuditResult) *AuditResponse {
	return &AuditResponse{
		Reference:  r.AccountRef,
		Balance:    r.Balance,
		Credits:    r.Credits,
		Debits:     r.Debits,
		Consistent: r.Consistent,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
