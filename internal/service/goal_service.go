package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/flow"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/goal"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
)

// goalContributionCategory is the fixed category of contribution transactions.
const goalContributionCategory = "Poupança para Metas"

// GoalService owns savings targets. CurrentAmount is a denormalized cache:
// every mutation site updates both the ledger and the counter in the same
// logical operation, and direct edits may move it independently of the
// transaction sum.
type GoalService struct {
	store      *storage.Storage
	runner     *flow.Runner
	maintainer SummaryMaintainer
	logger     *logrus.Logger
}

func NewGoalService(store *storage.Storage, runner *flow.Runner, maintainer SummaryMaintainer, logger *logrus.Logger) *GoalService {
	return &GoalService{store: store, runner: runner, maintainer: maintainer, logger: logger}
}

func (s *GoalService) CreateGoal(ctx context.Context, create *goal.GoalCreate) (uuid.UUID, error) {
	return s.store.Goals.Insert(ctx, create)
}

func (s *GoalService) ListGoals(ctx context.Context, ownerID uuid.UUID) ([]*goal.Goal, error) {
	return s.store.Goals.List(ctx, ownerID)
}

// EditGoal writes the non-nil fields, including manual adjustments of the
// running total.
func (s *GoalService) EditGoal(ctx context.Context, ownerID, id uuid.UUID, update *goal.GoalUpdate) error {
	existing, err := s.store.Goals.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.store.Goals.Update(ctx, ownerID, id, update)
}

// DeleteGoal removes the registry row only; contribution transactions stay in
// the ledger.
func (s *GoalService) DeleteGoal(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.store.Goals.Delete(ctx, ownerID, id)
}

// Contribute records a contribution toward a goal: one flagged expense
// transaction plus a direct increment of the running total. The two writes
// are separate round trips; a failure between them leaves the counter behind
// the ledger until corrected.
func (s *GoalService) Contribute(ctx context.Context, ownerID, goalID uuid.UUID, amount decimal.Decimal, paymentMethod string) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	target, err := s.store.Goals.FindByID(ctx, ownerID, goalID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrNotFound
	}

	var createdTx *ledger.Transaction

	return s.runner.Process(ctx, flow.Flow{
		Name: "goal-contribution",
		Steps: []flow.Step{
			{
				Name: "create-contribution-transaction",
				Run: func(ctx context.Context) error {
					transactionDate := time.Now()
					txID, err := s.store.Transactions.Insert(ctx, &ledger.TransactionCreate{
						OwnerID:            ownerID,
						TransactionDate:    transactionDate,
						Description:        target.Name,
						Category:           goalContributionCategory,
						Amount:             amount,
						Type:               ledger.TransactionTypeExpense,
						PaymentMethod:      paymentMethod,
						IsGoalContribution: true,
						GoalID:             uuid.NullUUID{UUID: goalID, Valid: true},
					})
					if err != nil {
						return err
					}
					createdTx = &ledger.Transaction{
						ID:              txID,
						OwnerID:         ownerID,
						TransactionDate: transactionDate,
						Amount:          amount,
						Type:            ledger.TransactionTypeExpense,
					}
					return nil
				},
			},
			{
				Name: "increment-goal-amount",
				Run: func(ctx context.Context) error {
					return s.store.Goals.UpdateCurrentAmount(ctx, ownerID, goalID, target.CurrentAmount.Add(amount))
				},
			},
			{
				Name: "update-monthly-summary",
				Run: func(ctx context.Context) error {
					return s.maintainer.TransactionAdded(ctx, ownerID, createdTx)
				},
			},
		},
	})
}
