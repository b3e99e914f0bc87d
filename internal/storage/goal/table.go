package goal

import (
	"context"
	"database/sql"
	"errors"

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

var _ IGoalTable = (*GoalsTable)(nil)

var goalColumns = []any{
	"id", "owner_id", "name", "target_amount", "current_amount", "target_date",
	"saving_location", "created_at",
}

// GoalsTable provides access to the goals table.
type GoalsTable struct {
	exec bob.Executor
}

func NewGoalsTable(db *sql.DB) *GoalsTable {
	return &GoalsTable{exec: bob.NewDB(db)}
}

// Insert creates a new goal with a zero current amount.
func (t *GoalsTable) Insert(ctx context.Context, create *GoalCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("goals",
			"owner_id", "name", "target_amount", "current_amount", "target_date",
			"saving_location",
		),
		im.Values(psql.Arg(
			create.OwnerID, create.Name, create.TargetAmount, decimal.Zero,
			create.TargetDate, create.SavingLocation,
		)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// FindByID retrieves a goal by primary key. Returns nil when absent.
func (t *GoalsTable) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Goal, error) {
	q := psql.Select(
		sm.Columns(goalColumns...),
		sm.From("goals"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Goal]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// List returns all of the owner's goals, oldest first.
func (t *GoalsTable) List(ctx context.Context, ownerID uuid.UUID) ([]*Goal, error) {
	q := psql.Select(
		sm.Columns(goalColumns...),
		sm.From("goals"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy("created_at").Asc(),
	)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*Goal]())
}

// Update writes the non-nil fields of the update.
func (t *GoalsTable) Update(ctx context.Context, ownerID, id uuid.UUID, update *GoalUpdate) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("goals"),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}

	changed := false
	if update.Name != nil {
		queryMods = append(queryMods, um.SetCol("name").ToArg(*update.Name))
		changed = true
	}
	if update.TargetAmount != nil {
		queryMods = append(queryMods, um.SetCol("target_amount").ToArg(*update.TargetAmount))
		changed = true
	}
	if update.CurrentAmount != nil {
		queryMods = append(queryMods, um.SetCol("current_amount").ToArg(*update.CurrentAmount))
		changed = true
	}
	if update.TargetDate != nil {
		queryMods = append(queryMods, um.SetCol("target_date").ToArg(*update.TargetDate))
		changed = true
	}
	if update.SavingLocation != nil {
		queryMods = append(queryMods, um.SetCol("saving_location").ToArg(*update.SavingLocation))
		changed = true
	}
	if !changed {
		return nil
	}

	_, err := bob.Exec(ctx, t.exec, psql.Update(queryMods...))
	return err
}

// UpdateCurrentAmount sets the denormalized running total directly.
func (t *GoalsTable) UpdateCurrentAmount(ctx context.Context, ownerID, id uuid.UUID, amount decimal.Decimal) error {
	q := psql.Update(
		um.Table("goals"),
		um.SetCol("current_amount").ToArg(amount),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

// Delete removes the registry row only; contribution transactions persist.
func (t *GoalsTable) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("goals"),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}
