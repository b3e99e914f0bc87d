package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/flow"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
)

// CustomCategoryPrefix distinguishes user-defined categories from built-ins.
// Stored names keep the prefix; display strips it.
const CustomCategoryPrefix = "custom:"

const pqUniqueViolation = "23505"

// NormalizeCategoryName trims the input and ensures the custom prefix.
func NormalizeCategoryName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, CustomCategoryPrefix) {
		return name
	}
	return CustomCategoryPrefix + name
}

// CategoryDisplayName strips the custom prefix for rendering. Storage and
// comparisons always use the prefixed form.
func CategoryDisplayName(name string) string {
	return strings.TrimPrefix(name, CustomCategoryPrefix)
}

// CategoryService owns the per-owner custom category names.
type CategoryService struct {
	store  *storage.Storage
	runner *flow.Runner
	logger *logrus.Logger
}

func NewCategoryService(store *storage.Storage, runner *flow.Runner, logger *logrus.Logger) *CategoryService {
	return &CategoryService{store: store, runner: runner, logger: logger}
}

// AddCategory registers a new custom category. Duplicates are rejected
// case-insensitively within (owner, type); the unique index catches the race
// where two requests pass the lookup at once.
func (s *CategoryService) AddCategory(ctx context.Context, ownerID uuid.UUID, categoryType ledger.TransactionType, name string) (uuid.UUID, error) {
	normalized := NormalizeCategoryName(name)
	if normalized == "" {
		return uuid.Nil, ErrInvalidCategoryName
	}

	existing, err := s.store.Categories.FindByName(ctx, ownerID, categoryType, normalized)
	if err != nil {
		return uuid.Nil, err
	}
	if existing != nil {
		return uuid.Nil, ErrDuplicateCategory
	}

	id, err := s.store.Categories.Insert(ctx, &category.CategoryCreate{
		OwnerID: ownerID,
		Name:    normalized,
		Type:    categoryType,
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return uuid.Nil, ErrDuplicateCategory
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, ownerID uuid.UUID, categoryType ledger.TransactionType) ([]*category.Category, error) {
	return s.store.Categories.List(ctx, ownerID, categoryType)
}

// DeleteCategory removes a custom category unless any transaction or
// recurring expense still references the exact stored string. The existence
// checks hit the store, not a cached count; the check-then-delete pair is not
// atomic against a concurrent insert.
func (s *CategoryService) DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error {
	existing, err := s.store.Categories.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	inTransactions, err := s.store.Transactions.ExistsByCategory(ctx, ownerID, existing.Name)
	if err != nil {
		return err
	}
	if inTransactions {
		return ErrCategoryInUse
	}

	inRecurring, err := s.store.RecurringExpenses.ExistsByCategory(ctx, ownerID, existing.Name)
	if err != nil {
		return err
	}
	if inRecurring {
		return ErrCategoryInUse
	}

	return s.store.Categories.Delete(ctx, ownerID, id)
}

// RenameCategory cascades a rename through the registry row, then the
// owner's transactions, then the recurring expense templates. The three
// updates are independent statements; a failure partway leaves the registry
// and the ledger disagreeing until retried, so the affected row counts are
// logged.
func (s *CategoryService) RenameCategory(ctx context.Context, ownerID, id uuid.UUID, newName string) error {
	normalized := NormalizeCategoryName(newName)
	if normalized == "" {
		return ErrInvalidCategoryName
	}

	existing, err := s.store.Categories.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.Name == normalized {
		return nil
	}

	duplicate, err := s.store.Categories.FindByName(ctx, ownerID, existing.Type, normalized)
	if err != nil {
		return err
	}
	if duplicate != nil && duplicate.ID != id {
		return ErrDuplicateCategory
	}

	oldName := existing.Name

	return s.runner.Process(ctx, flow.Flow{
		Name: "rename-category",
		Steps: []flow.Step{
			{
				Name: "update-category-row",
				Run: func(ctx context.Context) error {
					return s.store.Categories.UpdateName(ctx, ownerID, id, normalized)
				},
			},
			{
				Name: "update-transactions",
				Run: func(ctx context.Context) error {
					updated, err := s.store.Transactions.UpdateCategory(ctx, ownerID, oldName, normalized)
					if err != nil {
						return err
					}
					s.logger.WithFields(logrus.Fields{
						"category":     oldName,
						"updatedCount": updated,
					}).Info("CategoryService.Rename.transactions updated")
					return nil
				},
			},
			{
				Name: "update-recurring-expenses",
				Run: func(ctx context.Context) error {
					updated, err := s.store.RecurringExpenses.UpdateCategory(ctx, ownerID, oldName, normalized)
					if err != nil {
						return err
					}
					s.logger.WithFields(logrus.Fields{
						"category":     oldName,
						"updatedCount": updated,
					}).Info("CategoryService.Rename.recurring expenses updated")
					return nil
				},
			},
		},
	})
}
