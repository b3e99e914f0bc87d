package recurring

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ IExpenseTable = (*ExpensesTable)(nil)

var expenseColumns = []any{
	"id", "owner_id", "description", "category", "amount", "due_day",
	"payment_method", "repeat_months", "monthly_values", "paid_months",
	"created_at",
}

// ExpensesTable provides access to the recurring_expenses table.
type ExpensesTable struct {
	exec bob.Executor
}

func NewExpensesTable(db *sql.DB) *ExpensesTable {
	return &ExpensesTable{exec: bob.NewDB(db)}
}

// Insert creates a new template and returns its generated ID.
func (t *ExpensesTable) Insert(ctx context.Context, create *ExpenseCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("recurring_expenses",
			"owner_id", "description", "category", "amount", "due_day",
			"payment_method", "repeat_months", "monthly_values", "paid_months",
		),
		im.Values(psql.Arg(
			create.OwnerID, create.Description, create.Category, create.Amount,
			create.DueDay, create.PaymentMethod, create.RepeatMonths,
			MonthAmounts{}, pq.StringArray{},
		)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// FindByID retrieves a template by primary key, scoped to the owner. Returns
// nil when the template does not exist.
func (t *ExpensesTable) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Expense, error) {
	q := psql.Select(
		sm.Columns(expenseColumns...),
		sm.From("recurring_expenses"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Expense]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// List returns all of the owner's templates, oldest first.
func (t *ExpensesTable) List(ctx context.Context, ownerID uuid.UUID) ([]*Expense, error) {
	q := psql.Select(
		sm.Columns(expenseColumns...),
		sm.From("recurring_expenses"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy("created_at").Asc(),
	)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*Expense]())
}

// Delete removes a template. Linked transactions are the caller's problem.
func (t *ExpensesTable) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("recurring_expenses"),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

// UpdatePaidMonths persists the full paid-months set for a template.
func (t *ExpensesTable) UpdatePaidMonths(ctx context.Context, ownerID, id uuid.UUID, paidMonths []string) error {
	q := psql.Update(
		um.Table("recurring_expenses"),
		um.SetCol("paid_months").ToArg(pq.StringArray(paidMonths)),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

// UpdateMonthlyValues persists the full per-month override map for a template.
func (t *ExpensesTable) UpdateMonthlyValues(ctx context.Context, ownerID, id uuid.UUID, monthlyValues MonthAmounts) error {
	q := psql.Update(
		um.Table("recurring_expenses"),
		um.SetCol("monthly_values").ToArg(monthlyValues),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

// ExistsByCategory reports whether any template references the exact category
// string. Used by the category delete guard.
func (t *ExpensesTable) ExistsByCategory(ctx context.Context, ownerID uuid.UUID, category string) (bool, error) {
	q := psql.Select(
		sm.Columns("id"),
		sm.From("recurring_expenses"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("category").EQ(psql.Arg(category))),
		sm.Limit(1),
	)

	_, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateCategory renames a category across the owner's templates.
func (t *ExpensesTable) UpdateCategory(ctx context.Context, ownerID uuid.UUID, oldName, newName string) (int64, error) {
	q := psql.Update(
		um.Table("recurring_expenses"),
		um.SetCol("category").ToArg(newName),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Where(psql.Quote("category").EQ(psql.Arg(oldName))),
	)
	result, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
