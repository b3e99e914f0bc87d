package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/storage/goal"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
)

func newTestGoalServices(t *testing.T, store *testStore) (*GoalService, *TransactionService) {
	t.Helper()
	logger := testLogger()
	runner := newTestRunner(t, logger)
	maintainer := &recomputeMaintainer{store: store.storage}
	return NewGoalService(store.storage, runner, maintainer, logger),
		NewTransactionService(store.storage, runner, maintainer, logger)
}

func createTestGoal(t *testing.T, store *testStore, ownerID uuid.UUID, name string) uuid.UUID {
	t.Helper()
	id, err := store.goals.Insert(context.Background(), &goal.GoalCreate{
		OwnerID:      ownerID,
		Name:         name,
		TargetAmount: decimal.RequireFromString("1000"),
		TargetDate:   time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return id
}

func TestContributeCreatesTransactionAndIncrementsGoal(t *testing.T) {
	store := newTestStore()
	goalSvc, _ := newTestGoalServices(t, store)
	ownerID := uuid.Must(uuid.NewV4())
	goalID := createTestGoal(t, store, ownerID, "Viagem")
	ctx := context.Background()

	require.NoError(t, goalSvc.Contribute(ctx, ownerID, goalID, decimal.RequireFromString("150"), "pix"))

	g, err := store.goals.FindByID(ctx, ownerID, goalID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("150").Equal(g.CurrentAmount))

	require.Len(t, store.transactions.rows, 1)
	for _, tx := range store.transactions.rows {
		assert.True(t, tx.IsGoalContribution)
		assert.Equal(t, goalID, tx.GoalID.UUID)
		assert.Equal(t, "Viagem", tx.Description)
		assert.Equal(t, goalContributionCategory, tx.Category)
		assert.Equal(t, ledger.TransactionTypeExpense, tx.Type)
	}
}

func TestContributeRejectsNonPositiveAmounts(t *testing.T) {
	store := newTestStore()
	goalSvc, _ := newTestGoalServices(t, store)
	ownerID := uuid.Must(uuid.NewV4())
	goalID := createTestGoal(t, store, ownerID, "Viagem")
	ctx := context.Background()

	require.ErrorIs(t, goalSvc.Contribute(ctx, ownerID, goalID, decimal.Zero, "pix"), ErrInvalidAmount)
	require.ErrorIs(t, goalSvc.Contribute(ctx, ownerID, goalID, decimal.RequireFromString("-5"), "pix"), ErrInvalidAmount)
	assert.Empty(t, store.transactions.rows)
}

func TestContributeUnknownGoal(t *testing.T) {
	store := newTestStore()
	goalSvc, _ := newTestGoalServices(t, store)
	ownerID := uuid.Must(uuid.NewV4())

	err := goalSvc.Contribute(context.Background(), ownerID, uuid.Must(uuid.NewV4()), decimal.RequireFromString("10"), "pix")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteContributionDecrementsGoal(t *testing.T) {
	store := newTestStore()
	goalSvc, txSvc := newTestGoalServices(t, store)
	ownerID := uuid.Must(uuid.NewV4())
	goalID := createTestGoal(t, store, ownerID, "Viagem")
	ctx := context.Background()

	require.NoError(t, goalSvc.Contribute(ctx, ownerID, goalID, decimal.RequireFromString("150"), "pix"))

	var contributionID uuid.UUID
	for id := range store.transactions.rows {
		contributionID = id
	}

	require.NoError(t, txSvc.DeleteTransaction(ctx, ownerID, contributionID))

	g, err := store.goals.FindByID(ctx, ownerID, goalID)
	require.NoError(t, err)
	assert.True(t, g.CurrentAmount.IsZero())
	assert.Empty(t, store.transactions.rows)
}

func TestDeleteContributionFloorsGoalAtZero(t *testing.T) {
	store := newTestStore()
	goalSvc, txSvc := newTestGoalServices(t, store)
	ownerID := uuid.Must(uuid.NewV4())
	goalID := createTestGoal(t, store, ownerID, "Viagem")
	ctx := context.Background()

	require.NoError(t, goalSvc.Contribute(ctx, ownerID, goalID, decimal.RequireFromString("150"), "pix"))

	// A manual edit pulled the counter below the contribution sum.
	low := decimal.RequireFromString("40")
	require.NoError(t, goalSvc.EditGoal(ctx, ownerID, goalID, &goal.GoalUpdate{CurrentAmount: &low}))

	var contributionID uuid.UUID
	for id := range store.transactions.rows {
		contributionID = id
	}
	require.NoError(t, txSvc.DeleteTransaction(ctx, ownerID, contributionID))

	g, err := store.goals.FindByID(ctx, ownerID, goalID)
	require.NoError(t, err)
	assert.True(t, g.CurrentAmount.IsZero(), "counter floors at zero instead of going negative")
}

func TestDeleteContributionToleratesMissingGoal(t *testing.T) {
	store := newTestStore()
	goalSvc, txSvc := newTestGoalServices(t, store)
	ownerID := uuid.Must(uuid.NewV4())
	goalID := createTestGoal(t, store, ownerID, "Viagem")
	ctx := context.Background()

	require.NoError(t, goalSvc.Contribute(ctx, ownerID, goalID, decimal.RequireFromString("150"), "pix"))
	require.NoError(t, goalSvc.DeleteGoal(ctx, ownerID, goalID))

	var contributionID uuid.UUID
	for id := range store.transactions.rows {
		contributionID = id
	}
	require.NoError(t, txSvc.DeleteTransaction(ctx, ownerID, contributionID))
	assert.Empty(t, store.transactions.rows)
}

func TestDeleteGoalKeepsContributionTransactions(t *testing.T) {
	store := newTestStore()
	goalSvc, _ := newTestGoalServices(t, store)
	ownerID := uuid.Must(uuid.NewV4())
	goalID := createTestGoal(t, store, ownerID, "Viagem")
	ctx := context.Background()

	require.NoError(t, goalSvc.Contribute(ctx, ownerID, goalID, decimal.RequireFromString("150"), "pix"))
	require.NoError(t, goalSvc.DeleteGoal(ctx, ownerID, goalID))

	assert.Len(t, store.transactions.rows, 1)
}

func TestEditGoalNotFound(t *testing.T) {
	store := newTestStore()
	goalSvc, _ := newTestGoalServices(t, store)
	ownerID := uuid.Must(uuid.NewV4())

	name := "Novo nome"
	err := goalSvc.EditGoal(context.Background(), ownerID, uuid.Must(uuid.NewV4()), &goal.GoalUpdate{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}
