package summary

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// MockRecordRepository is a mock implementation of RecordRepository for testing
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Record, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Record), args.Error(1)
}

func (m *MockRecordRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecordRepository)
	service := NewService(mockRepo)

	records := []*domain.Record{
		{Type: domain.RecordTypeIncome, Amount: decimal.NewFromInt(300)},
		{Type: domain.RecordTypeExpense, Amount: decimal.NewFromInt(300)},
	}
	mockRepo.On("ListByOwner", ctx, "user-1").Return(records, nil)

	got, err := service.Summarize(ctx, "user-1")

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(got.TotalIncome))
	assert.True(t, decimal.NewFromInt(300).Equal(got.TotalExpense))
	assert.True(t, got.NetFlow.IsZero())
}

func TestSummarize_IdempotentRead(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecordRepository)
	service := NewService(mockRepo)

	records := []*domain.Record{
		{Type: domain.RecordTypeIncome, Amount: decimal.NewFromInt(2500)},
		{Type: domain.RecordTypeExpense, Amount: decimal.NewFromInt(800)},
	}
	mockRepo.On("ListByOwner", ctx, "user-1").Return(records, nil).Twice()

	first, err := service.Summarize(ctx, "user-1")
	require.NoError(t, err)
	second, err := service.Summarize(ctx, "user-1")
	require.NoError(t, err)

	assert.True(t, first.TotalIncome.Equal(second.TotalIncome))
	assert.True(t, first.TotalExpense.Equal(second.TotalExpense))
	assert.True(t, first.NetFlow.Equal(second.NetFlow))
}

func TestSummarize_Unauthorized(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRecordRepository)
	service := NewService(mockRepo)

	_, err := service.Summarize(ctx, "")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	mockRepo.AssertNotCalled(t, "ListByOwner")
}
