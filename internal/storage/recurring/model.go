package recurring

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// MonthAmounts maps "YYYY-MM" keys to per-month override amounts. Keys are
// present only where the user customized that month; an explicit zero is a
// valid override. Stored as jsonb.
type MonthAmounts map[string]decimal.Decimal

func (m MonthAmounts) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *MonthAmounts) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = MonthAmounts{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("recurring: cannot scan %T into MonthAmounts", src)
	}
}

// Expense is a template describing a periodic obligation. PaidMonths holds
// the "YYYY-MM" keys of settled months; a month appears there iff exactly one
// linked payment transaction exists for it.
type Expense struct {
	ID            uuid.UUID       `db:"id"`
	OwnerID       uuid.UUID       `db:"owner_id"`
	Description   string          `db:"description"`
	Category      string          `db:"category"`
	Amount        decimal.Decimal `db:"amount"`
	DueDay        int             `db:"due_day"`
	PaymentMethod string          `db:"payment_method"`
	RepeatMonths  int             `db:"repeat_months"`
	MonthlyValues MonthAmounts    `db:"monthly_values"`
	PaidMonths    pq.StringArray  `db:"paid_months"`
	CreatedAt     time.Time       `db:"created_at"`
}

// IsPaid reports whether a month key is in the paid set.
func (e *Expense) IsPaid(month string) bool {
	for _, paid := range e.PaidMonths {
		if paid == month {
			return true
		}
	}
	return false
}

// ExpenseCreate is the input for creating a new template. MonthlyValues and
// PaidMonths always start empty.
type ExpenseCreate struct {
	OwnerID       uuid.UUID
	Description   string
	Category      string
	Amount        decimal.Decimal
	DueDay        int
	PaymentMethod string
	RepeatMonths  int
}

// IExpenseTable defines the interface for recurring expense storage operations.
type IExpenseTable interface {
	Insert(ctx context.Context, create *ExpenseCreate) (uuid.UUID, error)
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Expense, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*Expense, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	UpdatePaidMonths(ctx context.Context, ownerID, id uuid.UUID, paidMonths []string) error
	UpdateMonthlyValues(ctx context.Context, ownerID, id uuid.UUID, monthlyValues MonthAmounts) error

	ExistsByCategory(ctx context.Context, ownerID uuid.UUID, category string) (bool, error)
	UpdateCategory(ctx context.Context, ownerID uuid.UUID, oldName, newName string) (int64, error)
}
