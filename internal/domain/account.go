package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the kind of account in the system
type AccountType string

const (
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeCredit   AccountType = "CREDIT"
)

// Account represents an account entity in the domain layer.
// Balance is only ever changed through the LedgerStore, except for the
// explicit overwrite allowed by account updates (a manual correction that
// breaks the derived-sum invariant until the next reconciling record).
type Account struct {
	ID      uuid.UUID
	OwnerID string
	Name    string
	Type    AccountType
	Balance decimal.Decimal
}

// Validate ensures the account adheres to domain rules
func (a *Account) Validate() error {
	if a.OwnerID == "" {
		return ErrUnauthorized
	}
	if a.Name == "" {
		return NewValidationError("account name cannot be empty")
	}
	switch a.Type {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit:
	default:
		return NewValidationError("account type must be CHECKING, SAVINGS or CREDIT")
	}
	// Balance may be negative: credit-like accounts go into overdraft.
	return nil
}

// AccountUpdate carries the fields of a partial account update.
// Nil fields are left untouched. Balance is a direct overwrite and is NOT
// validated against the account's record history.
type AccountUpdate struct {
	Name    *string
	Type    *AccountType
	Balance *decimal.Decimal
}

// ApplyTo overwrites the supplied fields on the account
func (u AccountUpdate) ApplyTo(a *Account) {
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Type != nil {
		a.Type = *u.Type
	}
	if u.Balance != nil {
		a.Balance = *u.Balance
	}
}
