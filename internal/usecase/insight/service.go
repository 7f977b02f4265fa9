package insight

import (
	"context"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// Generator produces advisory observations over a set of records.
// Implementations must degrade to a fallback result instead of failing.
type Generator interface {
	Insights(ctx context.Context, records []*domain.Record) ([]domain.Insight, error)
}

// Service serves best-effort financial insights. It reads committed ledger
// state only and can never affect a write.
type Service struct {
	RecordRepo domain.RecordRepository
	Generator  Generator
}

// NewService creates a new insight Service instance
func NewService(recordRepo domain.RecordRepository, generator Generator) *Service {
	return &Service{RecordRepo: recordRepo, Generator: generator}
}

// Insights returns advisory observations for the owner's ledger. When no
// generator is configured or the generator fails, the static fallback
// insight is returned instead of an error.
func (s *Service) Insights(ctx context.Context, ownerID string) ([]domain.Insight, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	records, err := s.RecordRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if s.Generator == nil {
		return []domain.Insight{domain.FallbackInsight}, nil
	}

	insights, err := s.Generator.Insights(ctx, records)
	if err != nil || len(insights) == 0 {
		return []domain.Insight{domain.FallbackInsight}, nil
	}
	return insights, nil
}
