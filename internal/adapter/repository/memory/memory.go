// Package memory provides an in-memory implementation of the ledger
// persistence contracts. It backs unit tests and the "memory" data backend
// for local development.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// Store holds accounts and records in process memory. Account map membership
// is guarded by accmu; each account additionally carries its own mutex so
// that balance read-modify-writes serialize per account rather than behind
// one global lock. The records map sits behind recmu. Lock hierarchy:
// accmu, then account mutexes in ascending ID order, then recmu.
type Store struct {
	accmu    sync.RWMutex
	accounts map[uuid.UUID]*lockedAccount

	recmu   sync.RWMutex
	records map[uuid.UUID]*domain.Record
}

type lockedAccount struct {
	mu      sync.Mutex
	account domain.Account
}

// New creates an empty store
func New() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]*lockedAccount),
		records:  make(map[uuid.UUID]*domain.Record),
	}
}

// ListByOwner retrieves all accounts owned by ownerID
func (s *Store) ListByOwner(_ context.Context, ownerID string) ([]*domain.Account, error) {
	s.accmu.RLock()
	defer s.accmu.RUnlock()

	var accounts []*domain.Account
	for _, la := range s.accounts {
		la.mu.Lock()
		if la.account.OwnerID == ownerID {
			copied := la.account
			accounts = append(accounts, &copied)
		}
		la.mu.Unlock()
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts, nil
}

// GetByID retrieves an account by its ID, scoped to ownerID
func (s *Store) GetByID(_ context.Context, ownerID string, id uuid.UUID) (*domain.Account, error) {
	s.accmu.RLock()
	la, ok := s.accounts[id]
	s.accmu.RUnlock()
	if !ok {
		return nil, domain.NewNotFoundError("account")
	}

	la.mu.Lock()
	defer la.mu.Unlock()
	if la.account.OwnerID != ownerID {
		return nil, domain.NewNotFoundError("account")
	}
	copied := la.account
	return &copied, nil
}

// Create creates a new account
func (s *Store) Create(_ context.Context, account *domain.Account) error {
	s.accmu.Lock()
	defer s.accmu.Unlock()
	s.accounts[account.ID] = &lockedAccount{account: *account}
	return nil
}

// Update overwrites the supplied fields of an existing account
func (s *Store) Update(_ context.Context, ownerID string, id uuid.UUID, update domain.AccountUpdate) (*domain.Account, error) {
	s.accmu.RLock()
	la, ok := s.accounts[id]
	s.accmu.RUnlock()
	if !ok {
		return nil, domain.NewNotFoundError("account")
	}

	la.mu.Lock()
	defer la.mu.Unlock()
	if la.account.OwnerID != ownerID {
		return nil, domain.NewNotFoundError("account")
	}
	update.ApplyTo(&la.account)
	copied := la.account
	return &copied, nil
}

// Delete removes an account. Records referencing it are left in place.
func (s *Store) Delete(_ context.Context, ownerID string, id uuid.UUID) error {
	s.accmu.Lock()
	defer s.accmu.Unlock()

	la, ok := s.accounts[id]
	if !ok || la.account.OwnerID != ownerID {
		return domain.NewNotFoundError("account")
	}
	delete(s.accounts, id)
	return nil
}

// ListRecordsByOwner retrieves all records owned by ownerID, newest first
func (s *Store) ListRecordsByOwner(_ context.Context, ownerID string) ([]*domain.Record, error) {
	s.recmu.RLock()
	defer s.recmu.RUnlock()

	var records []*domain.Record
	for _, r := range s.records {
		if r.OwnerID == ownerID {
			copied := *r
			records = append(records, &copied)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// DeleteRecord removes a record without reversing its balance effect
func (s *Store) DeleteRecord(_ context.Context, ownerID string, id uuid.UUID) error {
	s.recmu.Lock()
	defer s.recmu.Unlock()

	r, ok := s.records[id]
	if !ok || r.OwnerID != ownerID {
		return domain.NewNotFoundError("record")
	}
	delete(s.records, id)
	return nil
}

// Apply commits all postings as a single all-or-nothing unit. Touched
// accounts are locked in ascending ID order, existence and ownership are
// verified for every posting before anything is staged, and only then are
// records inserted and balances adjusted. A verification failure therefore
// leaves no partial effect.
func (s *Store) Apply(_ context.Context, postings []domain.Posting) error {
	if len(postings) == 0 {
		return nil
	}
	for _, p := range postings {
		if p.Record == nil || p.Record.AccountID == nil {
			return domain.NewValidationError("posting must reference an account")
		}
	}

	touched := make(map[uuid.UUID]string)
	for _, p := range postings {
		touched[*p.Record.AccountID] = p.Record.OwnerID
	}

	ids := make([]uuid.UUID, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	s.accmu.RLock()
	found := make(map[uuid.UUID]*lockedAccount, len(ids))
	for _, id := range ids {
		la, ok := s.accounts[id]
		if !ok {
			s.accmu.RUnlock()
			return domain.NewNotFoundError("account")
		}
		found[id] = la
	}
	s.accmu.RUnlock()

	locked := make([]*lockedAccount, 0, len(ids))
	unlock := func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].mu.Unlock()
		}
	}
	for _, id := range ids {
		la := found[id]
		la.mu.Lock()
		locked = append(locked, la)
		if la.account.OwnerID != touched[id] {
			unlock()
			return domain.NewNotFoundError("account")
		}
	}
	defer unlock()

	s.recmu.Lock()
	for _, p := range postings {
		copied := *p.Record
		s.records[copied.ID] = &copied
	}
	s.recmu.Unlock()

	for _, p := range postings {
		la := found[*p.Record.AccountID]
		la.account.Balance = la.account.Balance.Add(p.Record.SignedAmount())
	}

	return nil
}

var (
	_ domain.AccountRepository = (*accountView)(nil)
	_ domain.RecordRepository  = (*recordView)(nil)
	_ domain.LedgerStore       = (*Store)(nil)
)

// Accounts exposes the store as a domain.AccountRepository
func (s *Store) Accounts() domain.AccountRepository { return (*accountView)(s) }

// Records exposes the store as a domain.RecordRepository
func (s *Store) Records() domain.RecordRepository { return (*recordView)(s) }

type accountView Store

func (v *accountView) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	return (*Store)(v).ListByOwner(ctx, ownerID)
}

func (v *accountView) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Account, error) {
	return (*Store)(v).GetByID(ctx, ownerID, id)
}

func (v *accountView) Create(ctx context.Context, account *domain.Account) error {
	return (*Store)(v).Create(ctx, account)
}

func (v *accountView) Update(ctx context.Context, ownerID string, id uuid.UUID, update domain.AccountUpdate) (*domain.Account, error) {
	return (*Store)(v).Update(ctx, ownerID, id, update)
}

func (v *accountView) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return (*Store)(v).Delete(ctx, ownerID, id)
}

type recordView Store

func (v *recordView) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Record, error) {
	return (*Store)(v).ListRecordsByOwner(ctx, ownerID)
}

func (v *recordView) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return (*Store)(v).DeleteRecord(ctx, ownerID, id)
}
