package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/domain"
	applog "github.com/fintrack/fintrack-backend/internal/log"
)

// DefaultCategory is assigned when neither the caller nor the advisory
// suggester provides a category
const DefaultCategory = "Other"

// ApplyTransactionInput represents the input for recording one ledger entry
type ApplyTransactionInput struct {
	OwnerID     string
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Type        domain.RecordType
	Description string
	Category    string // optional; the advisory suggester fills it when empty
	Date        time.Time
}

// Service is the balance mutator: it couples every record insert with the
// owning account's balance adjustment through the LedgerStore's atomic unit.
type Service struct {
	Store       domain.LedgerStore
	RecordRepo  domain.RecordRepository
	Suggester   domain.CategorySuggester
	SuggestWait time.Duration

	logger *applog.Logger
}

// NewService creates a new ledger Service instance
func NewService(store domain.LedgerStore, recordRepo domain.RecordRepository, suggester domain.CategorySuggester, suggestWait time.Duration, logger *applog.Logger) *Service {
	return &Service{
		Store:       store,
		RecordRepo:  recordRepo,
		Suggester:   suggester,
		SuggestWait: suggestWait,
		logger:      logger.WithComponent(applog.ComponentLedger),
	}
}

// ApplyTransaction validates the intent, resolves a category and commits the
// record insert together with the balance adjustment as one unit. A missing
// account fails with ErrNotFound and persists nothing.
func (s *Service) ApplyTransaction(ctx context.Context, input ApplyTransactionInput) (*domain.Record, error) {
	record := &domain.Record{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		AccountID:   &input.AccountID,
		Description: input.Description,
		Category:    input.Category,
		Type:        input.Type,
		Amount:      input.Amount,
		Date:        domain.NormalizeDate(input.Date.Year(), input.Date.Month(), input.Date.Day()),
		CreatedAt:   time.Now().UTC(),
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if record.Category == "" {
		record.Category = s.suggestCategory(ctx, input.Description, input.Type)
	}

	if err := s.Store.Apply(ctx, []domain.Posting{{Record: record}}); err != nil {
		return nil, err
	}

	s.logger.Info("transaction applied",
		applog.FieldRecordID, record.ID.String(),
		applog.FieldAccountID, input.AccountID.String(),
		applog.FieldRecordType, string(record.Type),
		applog.FieldAmount, record.Amount.String(),
		applog.FieldCategory, record.Category,
	)
	return record, nil
}

// suggestCategory consults the advisory suggester under a bounded deadline.
// The suggester is never allowed to fail or stall a ledger write.
func (s *Service) suggestCategory(ctx context.Context, description string, recordType domain.RecordType) string {
	if s.Suggester == nil {
		return DefaultCategory
	}

	suggestCtx := ctx
	if s.SuggestWait > 0 {
		var cancel context.CancelFunc
		suggestCtx, cancel = context.WithTimeout(ctx, s.SuggestWait)
		defer cancel()
	}

	category, err := s.Suggester.Suggest(suggestCtx, description, recordType)
	if err != nil || category == "" {
		if err != nil {
			s.logger.Warn("category suggestion unavailable", applog.FieldError, err)
		}
		return DefaultCategory
	}
	return category
}

// ListRecords returns all records owned by ownerID, newest first
func (s *Service) ListRecords(ctx context.Context, ownerID string) ([]*domain.Record, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.RecordRepo.ListByOwner(ctx, ownerID)
}

// DeleteRecord removes a record. The balance effect the record originally
// produced is intentionally NOT reversed; the ledger keeps the historical
// behavior of treating deletion as pruning, not as a compensating entry.
func (s *Service) DeleteRecord(ctx context.Context, ownerID string, id uuid.UUID) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	return s.RecordRepo.Delete(ctx, ownerID, id)
}
