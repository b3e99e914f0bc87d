package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/flow"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
)

const defaultLimit = 20

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// TransactionQuery narrows a listing. Nil fields match everything; the date
// range is [From, To).
type TransactionQuery struct {
	Category *string
	Type     *ledger.TransactionType
	From     *time.Time
	To       *time.Time
}

// TransactionService handles direct ledger mutations: user-entered
// transactions and the delete path that keeps goal counters in step.
type TransactionService struct {
	store      *storage.Storage
	runner     *flow.Runner
	maintainer SummaryMaintainer
	logger     *logrus.Logger
}

func NewTransactionService(store *storage.Storage, runner *flow.Runner, maintainer SummaryMaintainer, logger *logrus.Logger) *TransactionService {
	return &TransactionService{store: store, runner: runner, maintainer: maintainer, logger: logger}
}

// CreateTransaction inserts a user-entered transaction and folds it into the
// monthly summary.
func (s *TransactionService) CreateTransaction(ctx context.Context, create *ledger.TransactionCreate) (uuid.UUID, error) {
	if !create.Amount.IsPositive() {
		return uuid.Nil, ErrInvalidAmount
	}
	if create.TransactionDate.IsZero() {
		create.TransactionDate = time.Now()
	}

	var id uuid.UUID

	err := s.runner.Process(ctx, flow.Flow{
		Name: "create-transaction",
		Steps: []flow.Step{
			{
				Name: "insert-transaction",
				Run: func(ctx context.Context) error {
					insertedID, err := s.store.Transactions.Insert(ctx, create)
					if err != nil {
						return err
					}
					id = insertedID
					return nil
				},
			},
			{
				Name: "update-monthly-summary",
				Run: func(ctx context.Context) error {
					return s.maintainer.TransactionAdded(ctx, create.OwnerID, &ledger.Transaction{
						ID:              id,
						OwnerID:         create.OwnerID,
						TransactionDate: create.TransactionDate,
						Amount:          create.Amount,
						Type:            create.Type,
					})
				},
			},
		},
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// DeleteTransaction removes a transaction. For goal contributions the goal's
// running total is decremented first, floored at zero; that pairing is this
// caller's responsibility, the store does nothing automatically.
func (s *TransactionService) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	tx, err := s.store.Transactions.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if tx == nil {
		return nil
	}

	var steps []flow.Step

	if tx.IsGoalContribution && tx.GoalID.Valid {
		steps = append(steps, flow.Step{
			Name: "decrement-goal-amount",
			Run: func(ctx context.Context) error {
				linkedGoal, err := s.store.Goals.FindByID(ctx, ownerID, tx.GoalID.UUID)
				if err != nil {
					return err
				}
				if linkedGoal == nil {
					// Goal deleted since the contribution; nothing to adjust.
					return nil
				}

				newAmount := linkedGoal.CurrentAmount.Sub(tx.Amount)
				if newAmount.IsNegative() {
					newAmount = decimal.Zero
				}
				return s.store.Goals.UpdateCurrentAmount(ctx, ownerID, linkedGoal.ID, newAmount)
			},
		})
	}

	steps = append(steps,
		flow.Step{
			Name: "delete-transaction",
			Run: func(ctx context.Context) error {
				return s.store.Transactions.Delete(ctx, ownerID, id)
			},
		},
		flow.Step{
			Name: "update-monthly-summary",
			Run: func(ctx context.Context) error {
				return s.maintainer.TransactionRemoved(ctx, ownerID, tx)
			},
		},
	)

	return s.runner.Process(ctx, flow.Flow{Name: "delete-transaction", Steps: steps})
}

// ListTransactions returns a page of transactions matching the query, using
// cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, ownerID uuid.UUID, query *TransactionQuery, cursor *TransactionCursor) ([]*ledger.Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &ledger.TransactionFilter{
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}
	if query != nil {
		filter.Category = query.Category
		filter.Type = query.Type
		filter.From = query.From
		filter.To = query.To
	}

	rows, err := s.store.Transactions.List(ctx, ownerID, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	return rows, nextCursor, nil
}
