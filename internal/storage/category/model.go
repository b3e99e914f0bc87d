package category

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage/ledger"
)

// Category is a user-defined category name, stored with the custom prefix so
// it never collides with built-ins. Uniqueness is case-insensitive within
// (owner, type) and also enforced by a unique index.
type Category struct {
	ID        uuid.UUID              `db:"id"`
	OwnerID   uuid.UUID              `db:"owner_id"`
	Name      string                 `db:"name"`
	Type      ledger.TransactionType `db:"type"`
	CreatedAt time.Time              `db:"created_at"`
}

// CategoryCreate is the input for creating a new custom category.
type CategoryCreate struct {
	OwnerID uuid.UUID
	Name    string
	Type    ledger.TransactionType
}

// ICategoryTable defines the interface for custom category storage operations.
type ICategoryTable interface {
	Insert(ctx context.Context, create *CategoryCreate) (uuid.UUID, error)
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Category, error)

	// FindByName matches case-insensitively within (owner, type). Returns nil
	// when no category matches.
	FindByName(ctx context.Context, ownerID uuid.UUID, categoryType ledger.TransactionType, name string) (*Category, error)

	List(ctx context.Context, ownerID uuid.UUID, categoryType ledger.TransactionType) ([]*Category, error)
	UpdateName(ctx context.Context, ownerID, id uuid.UUID, name string) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
