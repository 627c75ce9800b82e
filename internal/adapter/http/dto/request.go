package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gowallet/internal/usecase"
)

// RegisterRequest represents a request to register an account.
type RegisterRequest struct {
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	PIN         string `json:"pin"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		PhoneNumber: r.PhoneNumber,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Address:     r.Address,
		PIN:         r.PIN,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	PIN         string `json:"pin"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		PhoneNumber: r.PhoneNumber,
		PIN:         r.PIN,
	}
}

// UpdateProfileRequest carries optional profile field updates. Absent
// fields are left untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *UpdateProfileRequest) ToUseCaseInput(accountRef string) usecase.UpdateProfileInput {
	return usecase.UpdateProfileInput{
		AccountRef: accountRef,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Address:    r.Address,
	}
}

// TopUpRequest represents a request to credit the caller's wallet.
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *TopUpRequest) ToUseCaseInput(accountRef string) usecase.TopUpInput {
	return usecase.TopUpInput{
		AccountRef: accountRef,
		Amount:     r.Amount,
	}
}

// PaymentRequest represents a request to debit the caller's wallet.
type PaymentRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Remarks string          `json:"remarks"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *PaymentRequest) ToUseCaseInput(accountRef string) usecase.PaymentInput {
	return usecase.PaymentInput{
		AccountRef: accountRef,
		Amount:     r.Amount,
		Remarks:    r.Remarks,
	}
}

// TransferRequest represents a request to move money to another wallet.
type TransferRequest struct {
	TargetRef string          `json:"target_ref"`
	Amount    decimal.Decimal `json:"amount"`
	Remarks   string          `json:"remarks"`
}

// ToUseCaseInput converts to use case input for the given account.
func (r *TransferRequest) ToUseCaseInput(accountRef string) usecase.TransferInput {
	return usecase.TransferInput{
		AccountRef: accountRef,
		TargetRef:  r.TargetRef,
		Amount:     r.Amount,
		Remarks:    r.Remarks,
	}
}
