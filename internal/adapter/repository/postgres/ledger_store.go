package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// ledgerStore implements domain.LedgerStore on Postgres. Each Apply call runs
// inside one database transaction: record inserts and balance updates commit
// together or not at all. Row locks are taken with SELECT ... FOR UPDATE in
// ascending account-ID order so that concurrent multi-account units cannot
// deadlock, and the locked read-update pair serializes concurrent writers on
// the same account.
type ledgerStore struct {
	db *DB
}

// NewLedgerStore creates a new ledger store
func NewLedgerStore(db *DB) domain.LedgerStore {
	return &ledgerStore{db: db}
}

// Apply commits all postings as a single all-or-nothing unit
func (s *ledgerStore) Apply(ctx context.Context, postings []domain.Posting) error {
	if len(postings) == 0 {
		return nil
	}
	for _, p := range postings {
		if p.Record == nil || p.Record.AccountID == nil {
			return domain.NewValidationError("posting must reference an account")
		}
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStoreError(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer dbTx.Rollback()

	// Lock every touched account in ascending ID order and accumulate the
	// net delta per account.
	deltas := make(map[uuid.UUID]decimal.Decimal)
	owners := make(map[uuid.UUID]string)
	for _, p := range postings {
		id := *p.Record.AccountID
		deltas[id] = deltas[id].Add(p.Record.SignedAmount())
		owners[id] = p.Record.OwnerID
	}

	ids := make([]uuid.UUID, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	balances := make(map[uuid.UUID]decimal.Decimal, len(ids))
	lockQuery := `SELECT balance FROM accounts WHERE id = $1 AND owner_id = $2 FOR UPDATE`
	for _, id := range ids {
		var balanceStr string
		err := dbTx.QueryRowContext(ctx, lockQuery, id, owners[id]).Scan(&balanceStr)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NewNotFoundError("account")
			}
			return classifyError(err)
		}
		balance, err := decimal.NewFromString(balanceStr)
		if err != nil {
			return fmt.Errorf("failed to parse balance: %w", err)
		}
		balances[id] = balance
	}

	// Insert all records.
	insertQuery := `
		INSERT INTO records (id, owner_id, account_id, description, category, record_type, amount, record_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, p := range postings {
		r := p.Record
		_, err = dbTx.ExecContext(ctx, insertQuery,
			r.ID,
			r.OwnerID,
			r.AccountID,
			r.Description,
			r.Category,
			string(r.Type),
			r.Amount.String(),
			r.Date,
			r.CreatedAt,
		)
		if err != nil {
			return classifyError(err)
		}
	}

	// Write back the adjusted balances.
	updateQuery := `UPDATE accounts SET balance = $1 WHERE id = $2`
	for _, id := range ids {
		newBalance := balances[id].Add(deltas[id])
		_, err = dbTx.ExecContext(ctx, updateQuery, newBalance.String(), id)
		if err != nil {
			return classifyError(err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return classifyError(err)
	}

	return nil
}
