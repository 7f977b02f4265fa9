package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// recordRepository implements domain.RecordRepository
type recordRepository struct {
	db *DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *DB) domain.RecordRepository {
	return &recordRepository{db: db}
}

// ListByOwner retrieves all records owned by ownerID, newest first
func (r *recordRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Record, error) {
	query := `
		SELECT id, owner_id, account_id, description, category, record_type, amount, record_date, created_at
		FROM records
		WHERE owner_id = $1
		ORDER BY record_date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var records []*domain.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err)
	}

	return records, nil
}

// Delete removes a record without reversing its balance effect
func (r *recordRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	query := `DELETE FROM records WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return classifyError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return classifyError(err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("record")
	}

	return nil
}

func scanRecord(rows *sql.Rows) (*domain.Record, error) {
	var record domain.Record
	var accountID sql.NullString
	var recordType string
	var amountStr string

	err := rows.Scan(
		&record.ID,
		&record.OwnerID,
		&accountID,
		&record.Description,
		&record.Category,
		&recordType,
		&amountStr,
		&record.Date,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, classifyError(err)
	}

	if accountID.Valid {
		parsed, err := uuid.Parse(accountID.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse account_id: %w", err)
		}
		record.AccountID = &parsed
	}

	record.Type = domain.RecordType(recordType)

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount: %w", err)
	}
	record.Amount = amount

	return &record, nil
}
