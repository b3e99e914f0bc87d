package ledger

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType int8

const (
	TransactionTypeIncome TransactionType = iota
	TransactionTypeExpense
)

// Transaction represents an owner-scoped ledger entry. At most one of the
// three contribution flags is set; the services are the only writers of them.
type Transaction struct {
	ID                       uuid.UUID       `db:"id"`
	OwnerID                  uuid.UUID       `db:"owner_id"`
	TransactionDate          time.Time       `db:"transaction_date"`
	Description              string          `db:"description"`
	Category                 string          `db:"category"`
	Amount                   decimal.Decimal `db:"amount"`
	Type                     TransactionType `db:"type"`
	PaymentMethod            string          `db:"payment_method"`
	IsRecurringPayment       bool            `db:"is_recurring_payment"`
	IsGoalContribution       bool            `db:"is_goal_contribution"`
	IsInvestmentContribution bool            `db:"is_investment_contribution"`
	RecurringExpenseID       uuid.NullUUID   `db:"recurring_expense_id"`
	GoalID                   uuid.NullUUID   `db:"goal_id"`
	InvestmentID             uuid.NullUUID   `db:"investment_id"`
	CreatedAt                time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	OwnerID                  uuid.UUID
	TransactionDate          time.Time // defaults to now if zero
	Description              string
	Category                 string
	Amount                   decimal.Decimal
	Type                     TransactionType
	PaymentMethod            string
	IsRecurringPayment       bool
	IsGoalContribution       bool
	IsInvestmentContribution bool
	RecurringExpenseID       uuid.NullUUID
	GoalID                   uuid.NullUUID
	InvestmentID             uuid.NullUUID
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	Category        *string
	Type            *TransactionType
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation without changing callers.
type ITransactionTable interface {
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, ownerID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// FindRecurringPayment locates the linked payment transaction for a
	// recurring expense whose own date falls in [from, to). Returns nil when
	// no such transaction exists.
	FindRecurringPayment(ctx context.Context, ownerID, recurringExpenseID uuid.UUID, from, to time.Time) (*Transaction, error)
	ListByRecurringExpense(ctx context.Context, ownerID, recurringExpenseID uuid.UUID) ([]*Transaction, error)
	DeleteByRecurringExpense(ctx context.Context, ownerID, recurringExpenseID uuid.UUID) (int64, error)

	ExistsByCategory(ctx context.Context, ownerID uuid.UUID, category string) (bool, error)
	UpdateCategory(ctx context.Context, ownerID uuid.UUID, oldName, newName string) (int64, error)

	SumByTypeInRange(ctx context.Context, ownerID uuid.UUID, txType TransactionType, from, to time.Time) (decimal.Decimal, error)
}
