package summary

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// MonthSummary is the per-(owner, month) rollup of the transaction ledger.
// Month keys are "YYYY-MM".
type MonthSummary struct {
	OwnerID      uuid.UUID       `db:"owner_id"`
	Month        string          `db:"month"`
	IncomeTotal  decimal.Decimal `db:"income_total"`
	ExpenseTotal decimal.Decimal `db:"expense_total"`
}

// ISummaryTable defines the interface for monthly summary storage operations.
type ISummaryTable interface {
	// Upsert replaces the row for (owner, month) with the given totals.
	Upsert(ctx context.Context, ownerID uuid.UUID, month string, incomeTotal, expenseTotal decimal.Decimal) error

	// Accumulate adds the deltas onto the row for (owner, month), creating it
	// when absent. Negative deltas subtract.
	Accumulate(ctx context.Context, ownerID uuid.UUID, month string, incomeDelta, expenseDelta decimal.Decimal) error

	Get(ctx context.Context, ownerID uuid.UUID, month string) (*MonthSummary, error)
	ListRange(ctx context.Context, ownerID uuid.UUID, fromMonth, toMonth string) ([]*MonthSummary, error)
}
