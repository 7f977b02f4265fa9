package domain

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account persistence operations.
// All lookups are owner-scoped: an account that exists but belongs to another
// owner is indistinguishable from one that does not exist (ErrNotFound).
type AccountRepository interface {
	// ListByOwner retrieves all accounts owned by ownerID
	ListByOwner(ctx context.Context, ownerID string) ([]*Account, error)

	// GetByID retrieves an account by its ID, scoped to ownerID
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*Account, error)

	// Create creates a new account
	Create(ctx context.Context, account *Account) error

	// Update overwrites the supplied fields of an existing account
	Update(ctx context.Context, ownerID string, id uuid.UUID, update AccountUpdate) (*Account, error)

	// Delete removes an account. Records referencing it are left in place.
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// RecordRepository defines the read/delete interface for ledger records.
// Record creation only ever happens through LedgerStore.Apply so that every
// insert commits together with its balance adjustment.
type RecordRepository interface {
	// ListByOwner retrieves all records owned by ownerID, newest first
	ListByOwner(ctx context.Context, ownerID string) ([]*Record, error)

	// Delete removes a record. The balance effect the record originally
	// produced is NOT reversed.
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// Posting is one staged ledger effect: insert Record and apply its signed
// amount to the balance of the account it references. Record.AccountID must
// be set on every posting handed to the LedgerStore.
type Posting struct {
	Record *Record
}

// LedgerStore is the atomic unit shared by single-record writes and
// transfers. Apply stages every posting's record insert together with the
// matching balance adjustment and commits them as one all-or-nothing unit.
//
// Required semantics:
//   - no partial visibility: a concurrent reader sees either all postings or
//     none of them
//   - the balance read-modify-write of each touched account is a critical
//     section, so concurrent Apply calls against the same account serialize
//     (no lost update)
//   - accounts are locked in ascending ID order, so opposite-direction
//     transfers between the same pair of accounts cannot deadlock
//   - a missing or foreign-owned account fails the whole unit with
//     ErrNotFound and rolls back every staged effect
type LedgerStore interface {
	Apply(ctx context.Context, postings []Posting) error
}

// CategorySuggester is the advisory categorization capability. Suggestions
// are best-effort: implementations may call out to an external model, and a
// failure or slow response must degrade to a fallback category rather than
// block a ledger write.
type CategorySuggester interface {
	Suggest(ctx context.Context, description string, recordType RecordType) (string, error)
}
