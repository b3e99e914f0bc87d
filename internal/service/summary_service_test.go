package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
)

func insertTestTransaction(t *testing.T, store *testStore, ownerID uuid.UUID, txType ledger.TransactionType, amount string, date time.Time) *ledger.Transaction {
	t.Helper()
	id, err := store.transactions.Insert(context.Background(), &ledger.TransactionCreate{
		OwnerID:         ownerID,
		TransactionDate: date,
		Amount:          decimal.RequireFromString(amount),
		Type:            txType,
	})
	require.NoError(t, err)
	tx, err := store.transactions.FindByID(context.Background(), ownerID, id)
	require.NoError(t, err)
	return tx
}

func TestNewSummaryMaintainerStrategySelection(t *testing.T) {
	store := newTestStore()

	_, ok := NewSummaryMaintainer(config.SummaryStrategyRecompute, store.storage).(*recomputeMaintainer)
	assert.True(t, ok)

	_, ok = NewSummaryMaintainer(config.SummaryStrategyIncremental, store.storage).(*incrementalMaintainer)
	assert.True(t, ok)

	// Unknown strategies fall back to recompute.
	_, ok = NewSummaryMaintainer("something-else", store.storage).(*recomputeMaintainer)
	assert.True(t, ok)
}

func TestRecomputeMaintainerDerivesFromLedger(t *testing.T) {
	store := newTestStore()
	maintainer := &recomputeMaintainer{store: store.storage}
	ownerID := uuid.Must(uuid.NewV4())
	ctx := context.Background()
	date := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	income := insertTestTransaction(t, store, ownerID, ledger.TransactionTypeIncome, "3000", date)
	insertTestTransaction(t, store, ownerID, ledger.TransactionTypeExpense, "450.25", date)

	require.NoError(t, maintainer.TransactionAdded(ctx, ownerID, income))

	row, err := store.summaries.Get(ctx, ownerID, "2026-08")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, decimal.RequireFromString("3000").Equal(row.IncomeTotal))
	assert.True(t, decimal.RequireFromString("450.25").Equal(row.ExpenseTotal))
}

func TestRecomputeMaintainerConvergesAfterStaleRow(t *testing.T) {
	store := newTestStore()
	maintainer := &recomputeMaintainer{store: store.storage}
	ownerID := uuid.Must(uuid.NewV4())
	ctx := context.Background()
	date := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	// A stale row left by an earlier partial failure.
	require.NoError(t, store.summaries.Upsert(ctx, ownerID, "2026-08",
		decimal.RequireFromString("9999"), decimal.RequireFromString("9999")))

	tx := insertTestTransaction(t, store, ownerID, ledger.TransactionTypeExpense, "100", date)
	require.NoError(t, maintainer.TransactionRemoved(ctx, ownerID, tx))

	row, err := store.summaries.Get(ctx, ownerID, "2026-08")
	require.NoError(t, err)
	assert.True(t, row.IncomeTotal.IsZero())
	assert.True(t, decimal.RequireFromString("100").Equal(row.ExpenseTotal))
}

func TestIncrementalMaintainerAppliesDeltas(t *testing.T) {
	store := newTestStore()
	maintainer := &incrementalMaintainer{store: store.storage}
	ownerID := uuid.Must(uuid.NewV4())
	ctx := context.Background()
	date := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	tx := &ledger.Transaction{
		OwnerID:         ownerID,
		TransactionDate: date,
		Amount:          decimal.RequireFromString("200"),
		Type:            ledger.TransactionTypeExpense,
	}

	require.NoError(t, maintainer.TransactionAdded(ctx, ownerID, tx))
	require.NoError(t, maintainer.TransactionAdded(ctx, ownerID, tx))
	require.NoError(t, maintainer.TransactionRemoved(ctx, ownerID, tx))

	row, err := store.summaries.Get(ctx, ownerID, "2026-08")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("200").Equal(row.ExpenseTotal))
	assert.True(t, row.IncomeTotal.IsZero())
}

func TestSummaryWindow(t *testing.T) {
	store := newTestStore()
	maintainer := &recomputeMaintainer{store: store.storage}
	svc := NewSummaryService(store.storage, maintainer)
	ownerID := uuid.Must(uuid.NewV4())
	ctx := context.Background()

	insertTestTransaction(t, store, ownerID, ledger.TransactionTypeIncome, "1000",
		time.Date(2026, time.July, 5, 0, 0, 0, 0, time.UTC))
	insertTestTransaction(t, store, ownerID, ledger.TransactionTypeExpense, "300",
		time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC))

	end := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	summaries, err := svc.Window(ctx, ownerID, end, 3)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "2026-06", summaries[0].Month)
	assert.True(t, summaries[0].IncomeTotal.IsZero())

	assert.Equal(t, "2026-07", summaries[1].Month)
	assert.True(t, decimal.RequireFromString("1000").Equal(summaries[1].IncomeTotal))

	assert.Equal(t, "2026-08", summaries[2].Month)
	assert.True(t, decimal.RequireFromString("300").Equal(summaries[2].ExpenseTotal))

	// Only the current month's row is persisted back.
	row, err := store.summaries.Get(ctx, ownerID, "2026-08")
	require.NoError(t, err)
	assert.NotNil(t, row)
	row, err = store.summaries.Get(ctx, ownerID, "2026-07")
	require.NoError(t, err)
	assert.Nil(t, row)
}
