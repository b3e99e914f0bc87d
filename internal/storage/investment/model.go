package investment

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Investment is a financed, installment-based asset. PaidInstallments is a
// counter advanced independently of the ledger; no transaction is created when
// an installment is marked paid.
type Investment struct {
	ID               uuid.UUID       `db:"id"`
	OwnerID          uuid.UUID       `db:"owner_id"`
	Name             string          `db:"name"`
	Type             string          `db:"type"`
	Value            decimal.Decimal `db:"value"`
	Installments     int             `db:"installments"`
	InstallmentValue decimal.Decimal `db:"installment_value"`
	StartDate        time.Time       `db:"start_date"`
	PaidInstallments int             `db:"paid_installments"`
	Description      string          `db:"description"`
	CreatedAt        time.Time       `db:"created_at"`
}

// InvestmentCreate is the input for creating a new investment.
type InvestmentCreate struct {
	OwnerID          uuid.UUID
	Name             string
	Type             string
	Value            decimal.Decimal
	Installments     int
	InstallmentValue decimal.Decimal
	StartDate        time.Time
	Description      string
}

// IInvestmentTable defines the interface for investment storage operations.
type IInvestmentTable interface {
	Insert(ctx context.Context, create *InvestmentCreate) (uuid.UUID, error)
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Investment, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*Investment, error)
	UpdatePaidInstallments(ctx context.Context, ownerID, id uuid.UUID, paidInstallments int) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
