package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind discriminates the three ledger record variants.
type RecordKind string

const (
	RecordKindTopUp    RecordKind = "TOP_UP"
	RecordKindPayment  RecordKind = "PAYMENT"
	RecordKindTransfer RecordKind = "TRANSFER"
)

// Direction tells whether a record credits or debits the account it is
// viewed from. A transfer is a DEBIT for the sender and a CREDIT for
// the receiver.
type Direction string

const (
	DirectionCredit Direction = "CREDIT"
	DirectionDebit  Direction = "DEBIT"
)

// LedgerRecord is an immutable entry documenting one balance mutation
// together with the before/after snapshot of the account it belongs to.
type LedgerRecord struct {
	ID            string
	Kind          RecordKind
	AccountID     string
	Amount        decimal.Decimal
	Remarks       string
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	CreatedAt     time.Time

	// Transfer-only fields. TargetAccountID references the receiving
	// account; the target snapshot makes the single transfer row
	// reportable from the receiver's perspective too.
	TargetAccountID     string
	TargetBalanceBefore decimal.Decimal
	TargetBalanceAfter  decimal.Decimal
}

// Direction returns the direction of the record as seen by accountID.
func (r *LedgerRecord) Direction(accountID string) Direction {
	switch r.Kind {
	case RecordKindTopUp:
		return DirectionCredit
	case RecordKindPayment:
		return DirectionDebit
	case RecordKindTransfer:
		if accountID == r.TargetAccountID {
			return DirectionCredit
		}
		return DirectionDebit
	}
	return DirectionDebit
}

// Snapshot returns the before/after balance pair as seen by accountID.
func (r *LedgerRecord) Snapshot(accountID string) (before, after decimal.Decimal) {
	if r.Kind == RecordKindTransfer && accountID == r.TargetAccountID {
		return r.TargetBalanceBefore, r.TargetBalanceAfter
	}
	return r.BalanceBefore, r.BalanceAfter
}

// Validate checks the internal consistency of a record: a positive
// amount and a snapshot delta that matches the amount with the sign of
// the variant.
func (r *LedgerRecord) Validate() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	switch r.Kind {
	case RecordKindTopUp:
		if !r.BalanceAfter.Sub(r.BalanceBefore).Equal(r.Amount) {
			return ErrInconsistentRecord
		}
	case RecordKindPayment:
		if !r.BalanceBefore.Sub(r.BalanceAfter).Equal(r.Amount) {
			return ErrInconsistentRecord
		}
	case RecordKindTransfer:
		if !r.BalanceBefore.Sub(r.BalanceAfter).Equal(r.Amount) {
			return ErrInconsistentRecord
		}
		if !r.TargetBalanceAfter.Sub(r.TargetBalanceBefore).Equal(r.Amount) {
			return ErrInconsistentRecord
		}
		if r.TargetAccountID == r.AccountID {
			return ErrSelfTransfer
		}
	default:
		return ErrUnknownRecordKind
	}

	if r.BalanceAfter.IsNegative() {
		return ErrInsufficientBalance
	}

	return nil
}
