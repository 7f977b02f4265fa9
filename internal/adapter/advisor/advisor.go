// Package advisor implements the advisory categorization and insight
// capabilities. Everything here is best-effort: a failed or slow advisor
// call degrades to a fallback value and never fails a ledger operation.
package advisor

import (
	"context"
	"strings"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// FallbackCategory is returned whenever no better suggestion is available
const FallbackCategory = "Other"

// ExpenseCategories is the closed set the expense categorizer may pick from.
// Anything outside it collapses to FallbackCategory.
var ExpenseCategories = []string{
	"Food",
	"Transportation",
	"Entertainment",
	"Shopping",
	"Bills",
	"Healthcare",
	FallbackCategory,
}

// Noop is the default suggester used when no advisory backend is configured
type Noop struct{}

// Suggest always returns the fallback category
func (Noop) Suggest(_ context.Context, _ string, _ domain.RecordType) (string, error) {
	return FallbackCategory, nil
}

// categorizeIncome uses simple keyword matching; income descriptions are
// regular enough that a model call is not worth the latency.
func categorizeIncome(description string) string {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "salary") || strings.Contains(lower, "payroll") || strings.Contains(lower, "wages"):
		return "Salary"
	case strings.Contains(lower, "dividend") || strings.Contains(lower, "interest"):
		return "Investments"
	case strings.Contains(lower, "refund"):
		return "Refunds"
	default:
		return FallbackCategory
	}
}

func validExpenseCategory(category string) string {
	for _, c := range ExpenseCategories {
		if c == category {
			return category
		}
	}
	return FallbackCategory
}
