package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// ListByOwner retrieves all accounts owned by ownerID
func (r *accountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	query := `
		SELECT id, owner_id, name, account_type, balance
		FROM accounts
		WHERE owner_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError(err)
	}

	return accounts, nil
}

// GetByID retrieves an account by its ID, scoped to ownerID
func (r *accountRepository) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, owner_id, name, account_type, balance
		FROM accounts
		WHERE id = $1 AND owner_id = $2
	`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("account")
		}
		return nil, err
	}

	return account, nil
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, owner_id, name, account_type, balance)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.OwnerID,
		account.Name,
		string(account.Type),
		account.Balance.String(),
	)
	if err != nil {
		return classifyError(err)
	}

	return nil
}

// Update overwrites the supplied fields of an existing account. The balance
// field is a direct overwrite that bypasses the ledger; it exists as a manual
// correction escape hatch.
func (r *accountRepository) Update(ctx context.Context, ownerID string, id uuid.UUID, update domain.AccountUpdate) (*domain.Account, error) {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)

	if update.Name != nil {
		args = append(args, *update.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if update.Type != nil {
		args = append(args, string(*update.Type))
		sets = append(sets, fmt.Sprintf("account_type = $%d", len(args)))
	}
	if update.Balance != nil {
		args = append(args, update.Balance.String())
		sets = append(sets, fmt.Sprintf("balance = $%d", len(args)))
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, ownerID, id)
	}

	args = append(args, id)
	args = append(args, ownerID)
	query := fmt.Sprintf(`
		UPDATE accounts
		SET %s
		WHERE id = $%d AND owner_id = $%d
		RETURNING id, owner_id, name, account_type, balance
	`, strings.Join(sets, ", "), len(args)-1, len(args))

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("account")
		}
		return nil, err
	}

	return account, nil
}

// Delete removes an account. Referencing records are left in place.
func (r *accountRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	query := `DELETE FROM accounts WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return classifyError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return classifyError(err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("account")
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	var accountType string
	var balanceStr string

	err := row.Scan(
		&account.ID,
		&account.OwnerID,
		&account.Name,
		&accountType,
		&balanceStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, classifyError(err)
	}

	account.Type = domain.AccountType(accountType)

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	account.Balance = balance

	return &account, nil
}
