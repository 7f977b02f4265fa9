package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// CreateAccountInput represents the input for creating an account
type CreateAccountInput struct {
	OwnerID        string
	Name           string
	Type           domain.AccountType
	InitialBalance decimal.Decimal
}

// Service handles account management operations
type Service struct {
	AccountRepo domain.AccountRepository
}

// NewService creates a new account Service instance
func NewService(accountRepo domain.AccountRepository) *Service {
	return &Service{AccountRepo: accountRepo}
}

// List returns all accounts owned by ownerID
func (s *Service) List(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.AccountRepo.ListByOwner(ctx, ownerID)
}

// Create persists a new account. The initial balance is stored as-is: the
// account has no record history yet to reconcile against.
func (s *Service) Create(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	account := &domain.Account{
		ID:      uuid.New(),
		OwnerID: input.OwnerID,
		Name:    input.Name,
		Type:    input.Type,
		Balance: input.InitialBalance,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if err := s.AccountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Update overwrites the supplied fields of an account. Supplying a balance
// is a direct overwrite that bypasses the ledger: it is the manual
// correction escape hatch, and it breaks the balance-equals-record-sum
// property until a reconciling record is applied.
func (s *Service) Update(ctx context.Context, ownerID string, id uuid.UUID, update domain.AccountUpdate) (*domain.Account, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if update.Name != nil && *update.Name == "" {
		return nil, domain.NewValidationError("account name cannot be empty")
	}
	if update.Type != nil {
		switch *update.Type {
		case domain.AccountTypeChecking, domain.AccountTypeSavings, domain.AccountTypeCredit:
		default:
			return nil, domain.NewValidationError("account type must be CHECKING, SAVINGS or CREDIT")
		}
	}
	return s.AccountRepo.Update(ctx, ownerID, id, update)
}

// Delete removes an account. Records referencing the account are left in
// place as unattached history.
func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	return s.AccountRepo.Delete(ctx, ownerID, id)
}
