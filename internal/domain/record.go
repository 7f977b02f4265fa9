package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordType represents the signed direction of a ledger record
type RecordType string

const (
	RecordTypeIncome  RecordType = "INCOME"
	RecordTypeExpense RecordType = "EXPENSE"
)

// CategoryTransfer is the category assigned to both halves of a transfer
const CategoryTransfer = "Transfer"

// Record represents a single ledger record in the domain layer.
// Amount is an ABSOLUTE VALUE (always positive); the sign is implied by Type.
// AccountID is nullable: records created before accounts existed are kept
// unattached, and account deletion leaves its records in place.
type Record struct {
	ID          uuid.UUID
	OwnerID     string
	AccountID   *uuid.UUID
	Description string
	Category    string
	Type        RecordType
	Amount      decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
}

// Validate ensures the record adheres to domain rules
func (r *Record) Validate() error {
	if r.OwnerID == "" {
		return ErrUnauthorized
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("record amount must be positive")
	}
	if r.Type != RecordTypeIncome && r.Type != RecordTypeExpense {
		return NewValidationError("record type must be INCOME or EXPENSE")
	}
	return nil
}

// SignedAmount returns the record's effect on an account balance:
// positive for income, negative for expense.
func (r *Record) SignedAmount() decimal.Decimal {
	if r.Type == RecordTypeIncome {
		return r.Amount
	}
	return r.Amount.Neg()
}

// NormalizeDate pins a calendar date to noon UTC so that a record keeps the
// same calendar day regardless of the client's timezone.
func NormalizeDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// Summary is the read-side rollup over an owner's ledger
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetFlow      decimal.Decimal
}

// Summarize folds committed records into a Summary.
// Records are counted by type regardless of whether they are attached to an
// account, matching how totals are presented to the owner.
func Summarize(records []*Record) Summary {
	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	for _, r := range records {
		if r.Type == RecordTypeIncome {
			totalIncome = totalIncome.Add(r.Amount)
		} else {
			totalExpense = totalExpense.Add(r.Amount)
		}
	}
	return Summary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		NetFlow:      totalIncome.Sub(totalExpense),
	}
}
