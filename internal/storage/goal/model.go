package goal

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Goal is a savings target. CurrentAmount is a denormalized running total,
// kept in sync by every mutation site rather than derived from the ledger, so
// manual adjustments through Update remain possible.
type Goal struct {
	ID             uuid.UUID       `db:"id"`
	OwnerID        uuid.UUID       `db:"owner_id"`
	Name           string          `db:"name"`
	TargetAmount   decimal.Decimal `db:"target_amount"`
	CurrentAmount  decimal.Decimal `db:"current_amount"`
	TargetDate     time.Time       `db:"target_date"`
	SavingLocation string          `db:"saving_location"`
	CreatedAt      time.Time       `db:"created_at"`
}

// GoalCreate is the input for creating a new goal. CurrentAmount starts at 0.
type GoalCreate struct {
	OwnerID        uuid.UUID
	Name           string
	TargetAmount   decimal.Decimal
	TargetDate     time.Time
	SavingLocation string
}

// GoalUpdate carries the editable fields. Nil fields are left untouched.
type GoalUpdate struct {
	Name           *string
	TargetAmount   *decimal.Decimal
	CurrentAmount  *decimal.Decimal
	TargetDate     *time.Time
	SavingLocation *string
}

// IGoalTable defines the interface for goal storage operations.
type IGoalTable interface {
	Insert(ctx context.Context, create *GoalCreate) (uuid.UUID, error)
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Goal, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*Goal, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, update *GoalUpdate) error
	UpdateCurrentAmount(ctx context.Context, ownerID, id uuid.UUID, amount decimal.Decimal) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
