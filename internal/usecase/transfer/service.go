package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/domain"
	applog "github.com/fintrack/fintrack-backend/internal/log"
)

// TransferInput represents the transient transfer intent. It is never
// stored: a transfer materializes as exactly two records plus two balance
// adjustments.
type TransferInput struct {
	OwnerID       string
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
}

// Service orchestrates transfers by composing two postings into a single
// atomic unit. Deadlock freedom for opposite-direction transfers comes from
// the LedgerStore's ascending-ID lock order, not from anything here.
type Service struct {
	Store domain.LedgerStore

	logger *applog.Logger
}

// NewService creates a new transfer Service instance
func NewService(store domain.LedgerStore, logger *applog.Logger) *Service {
	return &Service{
		Store:  store,
		logger: logger.WithComponent(applog.ComponentTransfer),
	}
}

// Transfer moves amount between two accounts of the same owner. All four
// effects (two record inserts, two balance adjustments) commit together or
// not at all: if either account is missing, no partial debit or credit
// remains. Overdraft is allowed; the source balance may go negative.
func (s *Service) Transfer(ctx context.Context, input TransferInput) error {
	if input.OwnerID == "" {
		return domain.ErrUnauthorized
	}
	if input.FromAccountID == input.ToAccountID {
		return domain.NewValidationError("cannot transfer to the same account")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.NewValidationError("transfer amount must be positive")
	}

	now := time.Now().UTC()
	date := domain.NormalizeDate(now.Year(), now.Month(), now.Day())

	out := &domain.Record{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		AccountID:   &input.FromAccountID,
		Description: fmt.Sprintf("Transfer to %s", input.ToAccountID),
		Category:    domain.CategoryTransfer,
		Type:        domain.RecordTypeExpense,
		Amount:      input.Amount,
		Date:        date,
		CreatedAt:   now,
	}
	in := &domain.Record{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		AccountID:   &input.ToAccountID,
		Description: fmt.Sprintf("Transfer from %s", input.FromAccountID),
		Category:    domain.CategoryTransfer,
		Type:        domain.RecordTypeIncome,
		Amount:      input.Amount,
		Date:        date,
		CreatedAt:   now,
	}

	if err := s.Store.Apply(ctx, []domain.Posting{{Record: out}, {Record: in}}); err != nil {
		return err
	}

	s.logger.Info("transfer completed",
		"from_account_id", input.FromAccountID.String(),
		"to_account_id", input.ToAccountID.String(),
		applog.FieldAmount, input.Amount.String(),
	)
	return nil
}
