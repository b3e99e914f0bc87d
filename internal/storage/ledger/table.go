package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

var transactionColumns = []any{
	"id", "owner_id", "transaction_date", "description", "category", "amount",
	"type", "payment_method", "is_recurring_payment", "is_goal_contribution",
	"is_investment_contribution", "recurring_expense_id", "goal_id",
	"investment_id", "created_at",
}

// TransactionsTable provides access to the transactions table.
type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(db *sql.DB) *TransactionsTable {
	return &TransactionsTable{exec: bob.NewDB(db)}
}

// Insert creates a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	transactionDate := create.TransactionDate
	if transactionDate.IsZero() {
		transactionDate = time.Now()
	}

	q := psql.Insert(
		im.Into("transactions",
			"owner_id", "transaction_date", "description", "category", "amount",
			"type", "payment_method", "is_recurring_payment",
			"is_goal_contribution", "is_investment_contribution",
			"recurring_expense_id", "goal_id", "investment_id",
		),
		im.Values(psql.Arg(
			create.OwnerID, transactionDate, create.Description, create.Category,
			create.Amount, create.Type, create.PaymentMethod,
			create.IsRecurringPayment, create.IsGoalContribution,
			create.IsInvestmentContribution, create.RecurringExpenseID,
			create.GoalID, create.InvestmentID,
		)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// FindByID retrieves a transaction by primary key, scoped to the owner.
func (t *TransactionsTable) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// List returns transactions matching the filter, newest first. Nil filter
// returns all of the owner's transactions.
func (t *TransactionsTable) List(ctx context.Context, ownerID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	}
	if filter != nil {
		if filter.Category != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("category").EQ(psql.Arg(*filter.Category))))
		}
		if filter.Type != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("type").EQ(psql.Arg(*filter.Type))))
		}
		if filter.From != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(*filter.From))))
		}
		if filter.To != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").LT(psql.Arg(*filter.To))))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)

	return bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

// Delete removes a transaction by primary key, scoped to the owner.
func (t *TransactionsTable) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

// FindRecurringPayment is the store-level idempotency check for the paid
// toggle: it survives process restarts and concurrent tabs, unlike any
// in-memory guard.
func (t *TransactionsTable) FindRecurringPayment(ctx context.Context, ownerID, recurringExpenseID uuid.UUID, from, to time.Time) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("is_recurring_payment").EQ(psql.Arg(true))),
		sm.Where(psql.Quote("recurring_expense_id").EQ(psql.Arg(recurringExpenseID))),
		sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(from))),
		sm.Where(psql.Quote("transaction_date").LT(psql.Arg(to))),
		sm.Limit(1),
	)

	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// ListByRecurringExpense returns all payment transactions linked to a template.
func (t *TransactionsTable) ListByRecurringExpense(ctx context.Context, ownerID, recurringExpenseID uuid.UUID) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("recurring_expense_id").EQ(psql.Arg(recurringExpenseID))),
		sm.OrderBy("transaction_date").Asc(),
	)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*Transaction]())
}

// DeleteByRecurringExpense removes all payment transactions linked to a
// template and reports how many rows went away.
func (t *TransactionsTable) DeleteByRecurringExpense(ctx context.Context, ownerID, recurringExpenseID uuid.UUID) (int64, error) {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		dm.Where(psql.Quote("recurring_expense_id").EQ(psql.Arg(recurringExpenseID))),
	)
	result, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ExistsByCategory reports whether any transaction references the exact
// category string. Used by the category delete guard.
func (t *TransactionsTable) ExistsByCategory(ctx context.Context, ownerID uuid.UUID, category string) (bool, error) {
	q := psql.Select(
		sm.Columns("id"),
		sm.From("transactions"),
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

// UpdateCategory renames a category across the owner's transactions.
func (t *TransactionsTable) UpdateCategory(ctx context.Context, ownerID uuid.UUID, oldName, newName string) (int64, error) {
	q := psql.Update(
		um.Table("transactions"),
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

// SumByTypeInRange totals the owner's transactions of one type with dates in
// [from, to). Months with no rows sum to zero.
func (t *TransactionsTable) SumByTypeInRange(ctx context.Context, ownerID uuid.UUID, txType TransactionType, from, to time.Time) (decimal.Decimal, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("COALESCE(SUM(amount), 0)")),
		sm.From("transactions"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("type").EQ(psql.Arg(txType))),
		sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(from))),
		sm.Where(psql.Quote("transaction_date").LT(psql.Arg(to))),
	)

	total, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[decimal.Decimal])
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
