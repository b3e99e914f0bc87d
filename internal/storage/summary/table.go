package summary

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ ISummaryTable = (*SummariesTable)(nil)

var summaryColumns = []any{"owner_id", "month", "income_total", "expense_total"}

// SummariesTable provides access to the monthly_summaries table, keyed by
// (owner_id, month).
type SummariesTable struct {
	exec bob.Executor
}

func NewSummariesTable(db *sql.DB) *SummariesTable {
	return &SummariesTable{exec: bob.NewDB(db)}
}

// Upsert replaces the totals for (owner, month).
func (t *SummariesTable) Upsert(ctx context.Context, ownerID uuid.UUID, month string, incomeTotal, expenseTotal decimal.Decimal) error {
	q := psql.Insert(
		im.Into("monthly_summaries", "owner_id", "month", "income_total", "expense_total"),
		im.Values(psql.Arg(ownerID, month, incomeTotal, expenseTotal)),
		im.OnConflict("owner_id", "month").DoUpdate(
			im.SetExcluded("income_total"),
			im.SetExcluded("expense_total"),
		),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

// Accumulate adds the deltas onto the totals for (owner, month), seeding the
// row from zero when it does not exist yet.
func (t *SummariesTable) Accumulate(ctx context.Context, ownerID uuid.UUID, month string, incomeDelta, expenseDelta decimal.Decimal) error {
	q := psql.Insert(
		im.Into("monthly_summaries", "owner_id", "month", "income_total", "expense_total"),
		im.Values(psql.Arg(ownerID, month, incomeDelta, expenseDelta)),
		im.OnConflict("owner_id", "month").DoUpdate(
			im.SetCol("income_total").To(psql.Raw("monthly_summaries.income_total + EXCLUDED.income_total")),
			im.SetCol("expense_total").To(psql.Raw("monthly_summaries.expense_total + EXCLUDED.expense_total")),
		),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

// Get retrieves the row for (owner, month). Returns nil when absent.
func (t *SummariesTable) Get(ctx context.Context, ownerID uuid.UUID, month string) (*MonthSummary, error) {
	q := psql.Select(
		sm.Columns(summaryColumns...),
		sm.From("monthly_summaries"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("month").EQ(psql.Arg(month))),
	)

	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*MonthSummary]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// ListRange returns rows with fromMonth <= month <= toMonth, ascending.
// "YYYY-MM" keys sort lexicographically in calendar order.
func (t *SummariesTable) ListRange(ctx context.Context, ownerID uuid.UUID, fromMonth, toMonth string) ([]*MonthSummary, error) {
	q := psql.Select(
		sm.Columns(summaryColumns...),
		sm.From("monthly_summaries"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("month").GTE(psql.Arg(fromMonth))),
		sm.Where(psql.Quote("month").LTE(psql.Arg(toMonth))),
		sm.OrderBy("month").Asc(),
	)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*MonthSummary]())
}
