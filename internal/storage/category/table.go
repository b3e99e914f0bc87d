package category

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

	"github.com/carson-networks/finance-server/internal/storage/ledger"
)

var _ ICategoryTable = (*CategoriesTable)(nil)

var categoryColumns = []any{"id", "owner_id", "name", "type", "created_at"}

// CategoriesTable provides access to the categories table.
type CategoriesTable struct {
	exec bob.Executor
}

func NewCategoriesTable(db *sql.DB) *CategoriesTable {
	return &CategoriesTable{exec: bob.NewDB(db)}
}

// Insert creates a new category. The unique index on
// (owner_id, type, LOWER(name)) backs up the service-level duplicate check.
func (t *CategoriesTable) Insert(ctx context.Context, create *CategoryCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("categories", "owner_id", "name", "type"),
		im.Values(psql.Arg(create.OwnerID, create.Name, create.Type)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *CategoriesTable) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Category]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// FindByName matches case-insensitively within (owner, type).
func (t *CategoriesTable) FindByName(ctx context.Context, ownerID uuid.UUID, categoryType ledger.TransactionType, name string) (*Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("type").EQ(psql.Arg(categoryType))),
		sm.Where(psql.Raw("LOWER(name) = LOWER(?)", name)),
		sm.Limit(1),
	)

	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Category]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

func (t *CategoriesTable) List(ctx context.Context, ownerID uuid.UUID, categoryType ledger.TransactionType) ([]*Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("type").EQ(psql.Arg(categoryType))),
		sm.OrderBy("name").Asc(),
	)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*Category]())
}

func (t *CategoriesTable) UpdateName(ctx context.Context, ownerID, id uuid.UUID, name string) error {
	q := psql.Update(
		um.Table("categories"),
		um.SetCol("name").ToArg(name),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

func (t *CategoriesTable) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("categories"),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}
