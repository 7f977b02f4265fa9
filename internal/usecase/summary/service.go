package summary

import (
	"context"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// Service derives read-only rollups from the ledger. It never participates
// in the write path and sees only committed records.
type Service struct {
	RecordRepo domain.RecordRepository
}

// NewService creates a new summary Service instance
func NewService(recordRepo domain.RecordRepository) *Service {
	return &Service{RecordRepo: recordRepo}
}

// Summarize folds all of the owner's committed records into income, expense
// and net-flow totals
func (s *Service) Summarize(ctx context.Context, ownerID string) (domain.Summary, error) {
	if ownerID == "" {
		return domain.Summary{}, domain.ErrUnauthorized
	}

	records, err := s.RecordRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Summarize(records), nil
}
