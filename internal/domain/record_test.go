package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLedgerRecord_Validate(t *testing.T) {
	tests := []struct {
		name      string
		record    LedgerRecord
		errorType error
	}{
		{
			name: "valid top-up",
			record: LedgerRecord{
				Kind:          RecordKindTopUp,
				Amount:        decimal.NewFromInt(100),
				BalanceBefore: decimal.Zero,
				BalanceAfter:  decimal.NewFromInt(100),
			},
		},
		{
			name: "valid payment",
			record: LedgerRecord{
				Kind:          RecordKindPayment,
				Amount:        decimal.NewFromInt(40),
				BalanceBefore: decimal.NewFromInt(100),
				BalanceAfter:  decimal.NewFromInt(60),
			},
		},
		{
			name: "valid transfer",
			record: LedgerRecord{
				Kind:                RecordKindTransfer,
				AccountID:           "acc-1",
				TargetAccountID:     "acc-2",
				Amount:              decimal.NewFromInt(25),
				BalanceBefore:       decimal.NewFromInt(60),
				BalanceAfter:        decimal.NewFromInt(35),
				TargetBalanceBefore: decimal.Zero,
				TargetBalanceAfter:  decimal.NewFromInt(25),
			},
		},
		{
			name: "zero amount rejected",
			record: LedgerRecord{
				Kind:   RecordKindTopUp,
				Amount: decimal.Zero,
			},
			errorType: ErrInvalidAmount,
		},
		{
			name: "negative amount rejected",
			record: LedgerRecord{
				Kind:   RecordKindPayment,
				Amount: decimal.NewFromInt(-5),
			},
			errorType: ErrInvalidAmount,
		},
		{
			name: "top-up snapshot mismatch",
			record: LedgerRecord{
				Kind:          RecordKindTopUp,
				Amount:        decimal.NewFromInt(100),
				BalanceBefore: decimal.Zero,
				BalanceAfter:  decimal.NewFromInt(90),
			},
			errorType: ErrInconsistentRecord,
		},
		{
			name: "payment overdraws balance",
			record: LedgerRecord{
				Kind:          RecordKindPayment,
				Amount:        decimal.NewFromInt(100),
				BalanceBefore: decimal.NewFromInt(60),
				BalanceAfter:  decimal.NewFromInt(-40),
			},
			errorType: ErrInsufficientBalance,
		},
		{
			name: "transfer receiver snapshot mismatch",
			record: LedgerRecord{
				Kind:                RecordKindTransfer,
				AccountID:           "acc-1",
				TargetAccountID:     "acc-2",
				Amount:              decimal.NewFromInt(25),
				BalanceBefore:       decimal.NewFromInt(60),
				BalanceAfter:        decimal.NewFromInt(35),
				TargetBalanceBefore: decimal.Zero,
				TargetBalanceAfter:  decimal.NewFromInt(30),
			},
			errorType: ErrInconsistentRecord,
		},
		{
			name: "transfer to self rejected",
			record: LedgerRecord{
				Kind:                RecordKindTransfer,
				AccountID:           "acc-1",
				TargetAccountID:     "acc-1",
				Amount:              decimal.NewFromInt(25),
				BalanceBefore:       decimal.NewFromInt(60),
				BalanceAfter:        decimal.NewFromInt(35),
				TargetBalanceBefore: decimal.NewFromInt(35),
				TargetBalanceAfter:  decimal.NewFromInt(60),
			},
			errorType: ErrSelfTransfer,
		},
		{
			name: "unknown kind rejected",
			record: LedgerRecord{
				Kind:   RecordKind("REFUND"),
				Amount: decimal.NewFromInt(10),
			},
			errorType: ErrUnknownRecordKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()

			if tt.errorType == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.errorType) {
				t.Errorf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestLedgerRecord_Direction(t *testing.T) {
	transfer := &LedgerRecord{
		Kind:            RecordKindTransfer,
		AccountID:       "sender",
		TargetAccountID: "receiver",
	}

	if transfer.Direction("sender") != DirectionDebit {
		t.Error("expected DEBIT for sender")
	}
	if transfer.Direction("receiver") != DirectionCredit {
		t.Error("expected CREDIT for receiver")
	}

	topUp := &LedgerRecord{Kind: RecordKindTopUp, AccountID: "acc-1"}
	if topUp.Direction("acc-1") != DirectionCredit {
		t.Error("expected CREDIT for top-up")
	}

	payment := &LedgerRecord{Kind: RecordKindPayment, AccountID: "acc-1"}
	if payment.Direction("acc-1") != DirectionDebit {
		t.Error("expected DEBIT for payment")
	}
}

func TestLedgerRecord_Snapshot(t *testing.T) {
	transfer := &LedgerRecord{
		Kind:                RecordKindTransfer,
		AccountID:           "sender",
		TargetAccountID:     "receiver",
		BalanceBefore:       decimal.NewFromInt(60),
		BalanceAfter:        decimal.NewFromInt(35),
		TargetBalanceBefore: decimal.Zero,
		TargetBalanceAfter:  decimal.NewFromInt(25),
	}

	before, after := transfer.Snapshot("sender")
	if !before.Equal(decimal.NewFromInt(60)) || !after.Equal(decimal.NewFromInt(35)) {
		t.Errorf("unexpected sender snapshot: %s -> %s", before, after)
	}

	before, after = transfer.Snapshot("receiver")
	if !before.Equal(decimal.Zero) || !after.Equal(decimal.NewFromInt(25)) {
		t.Errorf("unexpected receiver snapshot: %s -> %s", before, after)
	}
}
