package investment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ IInvestmentTable = (*InvestmentsTable)(nil)

var investmentColumns = []any{
	"id", "owner_id", "name", "type", "value", "installments",
	"installment_value", "start_date", "paid_installments", "description",
	"created_at",
}

// InvestmentsTable provides access to the investments table.
type InvestmentsTable struct {
	exec bob.Executor
}

func NewInvestmentsTable(db *sql.DB) *InvestmentsTable {
	return &InvestmentsTable{exec: bob.NewDB(db)}
}

func (t *InvestmentsTable) Insert(ctx context.Context, create *InvestmentCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("investments",
			"owner_id", "name", "type", "value", "installments",
			"installment_value", "start_date", "paid_installments", "description",
		),
		im.Values(psql.Arg(
			create.OwnerID, create.Name, create.Type, create.Value,
			create.Installments, create.InstallmentValue, create.StartDate,
			0, create.Description,
		)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *InvestmentsTable) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Investment, error) {
	q := psql.Select(
		sm.Columns(investmentColumns...),
		sm.From("investments"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Investment]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

func (t *InvestmentsTable) List(ctx context.Context, ownerID uuid.UUID) ([]*Investment, error) {
	q := psql.Select(
		sm.Columns(investmentColumns...),
		sm.From("investments"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy("created_at").Asc(),
	)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*Investment]())
}

// UpdatePaidInstallments is a direct set, not an increment.
func (t *InvestmentsTable) UpdatePaidInstallments(ctx context.Context, ownerID, id uuid.UUID, paidInstallments int) error {
	q := psql.Update(
		um.Table("investments"),
		um.SetCol("paid_installments").ToArg(paidInstallments),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

func (t *InvestmentsTable) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("investments"),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}
