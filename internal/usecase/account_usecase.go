package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/gowallet/internal/domain"
)

// AccountUseCase handles registration, authentication and profile
// management. It never touches balances.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	refGen      ReferenceGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	refGen ReferenceGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		refGen:      refGen,
	}
}

// RegisterInput represents input for creating an account.
type RegisterInput struct {
	PhoneNumber string
	FirstName   string
	LastName    string
	Address     string
	PIN         string
}

// Register creates a new account with a zero balance and a bcrypt
// hashed PIN.
func (uc *AccountUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if err := domain.ValidatePhoneNumber(input.PhoneNumber); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(input.FirstName); err != nil {
		return nil, err
	}
	if err := domain.ValidateName(input.LastName); err != nil {
		return nil, err
	}
	if err := domain.ValidateAddress(input.Address); err != nil {
		return nil, err
	}
	if err := domain.ValidatePIN(input.PIN); err != nil {
		return nil, err
	}

	existing, err := uc.accountRepo.GetByPhoneNumber(ctx, input.PhoneNumber)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPhoneNumberTaken
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:          uc.idGen.Generate(),
		Reference:   uc.refGen.Generate(),
		PhoneNumber: input.PhoneNumber,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Address:     input.Address,
		PINHash:     string(pinHash),
		Balance:     decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, err
	}

	// The registration event commits or rolls back with the insert.
	if uc.outboxRepo != nil {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   account.Reference,
			AggregateType: domain.AggregateTypeAccount,
			EventType:     domain.EventTypeRegistered,
			Payload: domain.MarshalPayload(domain.RegisteredEvent{
				AccountRef:  account.Reference,
				PhoneNumber: account.PhoneNumber,
			}),
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	account.PINHash = ""

	return account, nil
}

// AuthenticateInput represents login credentials.
type AuthenticateInput struct {
	PhoneNumber string
	PIN         string
}

// Authenticate verifies a phone number and PIN pair. The caller issues
// the token; the use case only vouches for the identity.
func (uc *AccountUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByPhoneNumber(ctx, input.PhoneNumber)
	if err != nil || account == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PINHash), []byte(input.PIN)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	account.PINHash = ""

	return account, nil
}

// UpdateProfileInput carries the explicitly mutable profile fields.
// Phone number is identity and stays immutable.
type UpdateProfileInput struct {
	AccountRef string
	FirstName  *string
	LastName   *string
	Address    *string
}

// UpdateProfile applies the allow-listed field updates.
func (uc *AccountUseCase) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByReference(ctx, input.AccountRef)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		if err := domain.ValidateName(*input.FirstName); err != nil {
			return nil, err
		}
		account.FirstName = *input.FirstName
	}

	if input.LastName != nil {
		if err := domain.ValidateName(*input.LastName); err != nil {
			return nil, err
		}
		account.LastName = *input.LastName
	}

	if input.Address != nil {
		if err := domain.ValidateAddress(*input.Address); err != nil {
			return nil, err
		}
		account.Address = *input.Address
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.UpdateProfile(ctx, account); err != nil {
		return nil, err
	}

	account.PINHash = ""

	return account, nil
}

// GetByReference retrieves an account by its external reference.
func (uc *AccountUseCase) GetByReference(ctx context.Context, ref string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByReference(ctx, ref)
	if err != nil {
		return nil, err
	}

	account.PINHash = ""

	return account, nil
}
