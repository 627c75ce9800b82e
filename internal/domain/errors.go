package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrPhoneNumberTaken = errors.New("phone number already registered")

	// Wallet errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("balance is not enough")
	ErrTargetNotFound      = errors.New("target account not found")
	ErrSelfTransfer        = errors.New("cannot transfer to yourself")
	ErrContentionTimeout   = errors.New("could not acquire account lock, retry the operation")

	// Ledger errors
	ErrInconsistentRecord = errors.New("record snapshot does not match amount")
	ErrUnknownRecordKind  = errors.New("unknown record kind")

	// Authentication errors
	ErrInvalidCredentials = errors.New("phone number and PIN do not match")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)
