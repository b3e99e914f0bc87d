package storage

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/goal"
	"github.com/carson-networks/finance-server/internal/storage/investment"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
	"github.com/carson-networks/finance-server/internal/storage/recurring"
	"github.com/carson-networks/finance-server/internal/storage/summary"
)

// Storage aggregates the table accessors. Each field is an interface so tests
// can swap in fakes or mocks.
type Storage struct {
	DB                *sql.DB
	Transactions      ledger.ITransactionTable
	RecurringExpenses recurring.IExpenseTable
	Goals             goal.IGoalTable
	Investments       investment.IInvestmentTable
	Summaries         summary.ISummaryTable
	Categories        category.ICategoryTable
}

func NewStorage(env *config.Config) *Storage {
	db, err := sql.Open("postgres", env.ConnectionString())
	if err != nil {
		log.Fatal(err)
	}

	return &Storage{
		DB:                db,
		Transactions:      ledger.NewTransactionsTable(db),
		RecurringExpenses: recurring.NewExpensesTable(db),
		Goals:             goal.NewGoalsTable(db),
		Investments:       investment.NewInvestmentsTable(db),
		Summaries:         summary.NewSummariesTable(db),
		Categories:        category.NewCategoriesTable(db),
	}
}
