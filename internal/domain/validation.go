package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrPINTooWeak         = errors.New("PIN does not meet requirements")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxNameLength    = 30
	MaxAddressLength = 255
	MaxRemarksLength = 255
	MinPINLength     = 6
	MaxPINLength     = 6
	MaxAmount        = "99999999.99" // per-operation cap, below the NUMERIC(12,2) columns
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// ValidatePhoneNumber validates a phone number in E.164-ish form.
func ValidatePhoneNumber(phone string) error {
	phone = strings.TrimSpace(phone)
	if !phoneRegex.MatchString(phone) {
		return ErrInvalidPhoneNumber
	}
	return nil
}

// ValidateName validates a first or last name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}
	return nil
}

// ValidateAddress validates a postal address.
func ValidateAddress(address string) error {
	if len(address) > MaxAddressLength {
		return fmt.Errorf("%w: address exceeds %d characters", ErrInvalidAddress, MaxAddressLength)
	}
	return nil
}

// ValidatePIN validates a wallet PIN: exactly six digits.
func ValidatePIN(pin string) error {
	if len(pin) < MinPINLength || len(pin) > MaxPINLength {
		return fmt.Errorf("%w: must be %d digits", ErrPINTooWeak, MinPINLength)
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: must contain only digits", ErrPINTooWeak)
		}
	}
	return nil
}

// ValidateAmount validates a mutation amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// TruncateRemarks trims remarks to the persisted length. The cut never
// splits a UTF-8 rune; a multibyte character straddling the limit is
// dropped whole so the stored string stays valid.
func TruncateRemarks(remarks string) string {
	remarks = strings.TrimSpace(remarks)
	if len(remarks) <= MaxRemarksLength {
		return remarks
	}

	cut := MaxRemarksLength
	for cut > 0 && !utf8.RuneStart(remarks[cut]) {
		cut--
	}
	return remarks[:cut]
}
