package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
	"github.com/carson-networks/finance-server/internal/storage/summary"
)

// SummaryMaintainer keeps the monthly_summaries rollup consistent with the
// transaction ledger. Two implementations exist behind this interface;
// config.SummaryStrategy picks one, recompute being the default since it
// converges even after a partial failure left a row stale.
type SummaryMaintainer interface {
	TransactionAdded(ctx context.Context, ownerID uuid.UUID, tx *ledger.Transaction) error
	TransactionRemoved(ctx context.Context, ownerID uuid.UUID, tx *ledger.Transaction) error
	RebuildMonth(ctx context.Context, ownerID uuid.UUID, month string) error
}

// NewSummaryMaintainer selects the maintainer for the configured strategy.
func NewSummaryMaintainer(strategy string, store *storage.Storage) SummaryMaintainer {
	if strategy == config.SummaryStrategyIncremental {
		return &incrementalMaintainer{store: store}
	}
	return &recomputeMaintainer{store: store}
}

// recomputeMaintainer re-derives the affected month's totals from the ledger
// on every change and upserts the row.
type recomputeMaintainer struct {
	store *storage.Storage
}

func (m *recomputeMaintainer) TransactionAdded(ctx context.Context, ownerID uuid.UUID, tx *ledger.Transaction) error {
	return recomputeMonth(ctx, m.store, ownerID, MonthKey(tx.TransactionDate))
}

func (m *recomputeMaintainer) TransactionRemoved(ctx context.Context, ownerID uuid.UUID, tx *ledger.Transaction) error {
	return recomputeMonth(ctx, m.store, ownerID, MonthKey(tx.TransactionDate))
}

func (m *recomputeMaintainer) RebuildMonth(ctx context.Context, ownerID uuid.UUID, month string) error {
	return recomputeMonth(ctx, m.store, ownerID, month)
}

// incrementalMaintainer applies the transaction's amount as a delta onto the
// aggregate row. Cheaper per mutation, but a lost delta stays lost until the
// next rebuild.
type incrementalMaintainer struct {
	store *storage.Storage
}

func (m *incrementalMaintainer) TransactionAdded(ctx context.Context, ownerID uuid.UUID, tx *ledger.Transaction) error {
	incomeDelta, expenseDelta := deltasFor(tx, false)
	return m.store.Summaries.Accumulate(ctx, ownerID, MonthKey(tx.TransactionDate), incomeDelta, expenseDelta)
}

func (m *incrementalMaintainer) TransactionRemoved(ctx context.Context, ownerID uuid.UUID, tx *ledger.Transaction) error {
	incomeDelta, expenseDelta := deltasFor(tx, true)
	return m.store.Summaries.Accumulate(ctx, ownerID, MonthKey(tx.TransactionDate), incomeDelta, expenseDelta)
}

func (m *incrementalMaintainer) RebuildMonth(ctx context.Context, ownerID uuid.UUID, month string) error {
	return recomputeMonth(ctx, m.store, ownerID, month)
}

func deltasFor(tx *ledger.Transaction, negate bool) (incomeDelta, expenseDelta decimal.Decimal) {
	amount := tx.Amount
	if negate {
		amount = amount.Neg()
	}
	if tx.Type == ledger.TransactionTypeIncome {
		return amount, decimal.Zero
	}
	return decimal.Zero, amount
}

func recomputeMonth(ctx context.Context, store *storage.Storage, ownerID uuid.UUID, month string) error {
	from, to, err := MonthBounds(month)
	if err != nil {
		return err
	}

	incomeTotal, err := store.Transactions.SumByTypeInRange(ctx, ownerID, ledger.TransactionTypeIncome, from, to)
	if err != nil {
		return err
	}
	expenseTotal, err := store.Transactions.SumByTypeInRange(ctx, ownerID, ledger.TransactionTypeExpense, from, to)
	if err != nil {
		return err
	}

	return store.Summaries.Upsert(ctx, ownerID, month, incomeTotal, expenseTotal)
}

// SummaryService serves the month-window view used by dashboards and reports.
type SummaryService struct {
	store      *storage.Storage
	maintainer SummaryMaintainer
}

func NewSummaryService(store *storage.Storage, maintainer SummaryMaintainer) *SummaryService {
	return &SummaryService{store: store, maintainer: maintainer}
}

// Maintainer exposes the configured maintainer to the other services.
func (s *SummaryService) Maintainer() SummaryMaintainer {
	return s.maintainer
}

// Window returns the trailing `months` months ending at `end`, derived from
// the ledger. Only the current month's row is persisted back to the store;
// the trailing months are recomputed in memory.
func (s *SummaryService) Window(ctx context.Context, ownerID uuid.UUID, end time.Time, months int) ([]*summary.MonthSummary, error) {
	if months < 1 {
		months = 12
	}
	currentMonth := MonthKey(end)

	result := make([]*summary.MonthSummary, 0, months)
	for _, month := range trailingMonths(end, months) {
		from, to, err := MonthBounds(month)
		if err != nil {
			return nil, err
		}

		incomeTotal, err := s.store.Transactions.SumByTypeInRange(ctx, ownerID, ledger.TransactionTypeIncome, from, to)
		if err != nil {
			return nil, err
		}
		expenseTotal, err := s.store.Transactions.SumByTypeInRange(ctx, ownerID, ledger.TransactionTypeExpense, from, to)
		if err != nil {
			return nil, err
		}

		if month == currentMonth {
			if err := s.store.Summaries.Upsert(ctx, ownerID, month, incomeTotal, expenseTotal); err != nil {
				return nil, err
			}
		}

		result = append(result, &summary.MonthSummary{
			OwnerID:      ownerID,
			Month:        month,
			IncomeTotal:  incomeTotal,
			ExpenseTotal: expenseTotal,
		})
	}

	return result, nil
}
