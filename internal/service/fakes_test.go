package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/flow"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/goal"
	"github.com/carson-networks/finance-server/internal/storage/investment"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
	"github.com/carson-networks/finance-server/internal/storage/recurring"
	"github.com/carson-networks/finance-server/internal/storage/summary"
)

// In-memory table fakes. Each fake holds rows keyed by id and supports
// injecting an error on a specific method to exercise partial-failure paths.

type fakeTransactionTable struct {
	rows map[uuid.UUID]*ledger.Transaction

	insertErr error
	deleteErr error
}

func newFakeTransactionTable() *fakeTransactionTable {
	return &fakeTransactionTable{rows: make(map[uuid.UUID]*ledger.Transaction)}
}

func (t *fakeTransactionTable) Insert(_ context.Context, create *ledger.TransactionCreate) (uuid.UUID, error) {
	if t.insertErr != nil {
		return uuid.Nil, t.insertErr
	}
	id := uuid.Must(uuid.NewV4())
	t.rows[id] = &ledger.Transaction{
		ID:                       id,
		OwnerID:                  create.OwnerID,
		TransactionDate:          create.TransactionDate,
		Description:              create.Description,
		Category:                 create.Category,
		Amount:                   create.Amount,
		Type:                     create.Type,
		PaymentMethod:            create.PaymentMethod,
		IsRecurringPayment:       create.IsRecurringPayment,
		IsGoalContribution:       create.IsGoalContribution,
		IsInvestmentContribution: create.IsInvestmentContribution,
		RecurringExpenseID:       create.RecurringExpenseID,
		GoalID:                   create.GoalID,
		InvestmentID:             create.InvestmentID,
		CreatedAt:                time.Now(),
	}
	return id, nil
}

func (t *fakeTransactionTable) FindByID(_ context.Context, ownerID, id uuid.UUID) (*ledger.Transaction, error) {
	tx, ok := t.rows[id]
	if !ok || tx.OwnerID != ownerID {
		return nil, nil
	}
	return tx, nil
}

func (t *fakeTransactionTable) List(_ context.Context, ownerID uuid.UUID, filter *ledger.TransactionFilter) ([]*ledger.Transaction, error) {
	var out []*ledger.Transaction
	for _, tx := range t.rows {
		if tx.OwnerID != ownerID {
			continue
		}
		if filter.Category != nil && tx.Category != *filter.Category {
			continue
		}
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		if filter.From != nil && tx.TransactionDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !tx.TransactionDate.Before(*filter.To) {
			continue
		}
		if filter.MaxCreationTime != nil && tx.CreatedAt.After(*filter.MaxCreationTime) {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit+1 {
		out = out[:filter.Limit+1]
	}
	return out, nil
}

func (t *fakeTransactionTable) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	if t.deleteErr != nil {
		return t.deleteErr
	}
	tx, ok := t.rows[id]
	if ok && tx.OwnerID == ownerID {
		delete(t.rows, id)
	}
	return nil
}

func (t *fakeTransactionTable) FindRecurringPayment(_ context.Context, ownerID, recurringExpenseID uuid.UUID, from, to time.Time) (*ledger.Transaction, error) {
	for _, tx := range t.rows {
		if tx.OwnerID != ownerID || !tx.IsRecurringPayment {
			continue
		}
		if !tx.RecurringExpenseID.Valid || tx.RecurringExpenseID.UUID != recurringExpenseID {
			continue
		}
		if tx.TransactionDate.Before(from) || !tx.TransactionDate.Before(to) {
			continue
		}
		return tx, nil
	}
	return nil, nil
}

func (t *fakeTransactionTable) ListByRecurringExpense(_ context.Context, ownerID, recurringExpenseID uuid.UUID) ([]*ledger.Transaction, error) {
	var out []*ledger.Transaction
	for _, tx := range t.rows {
		if tx.OwnerID == ownerID && tx.RecurringExpenseID.Valid && tx.RecurringExpenseID.UUID == recurringExpenseID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (t *fakeTransactionTable) DeleteByRecurringExpense(_ context.Context, ownerID, recurringExpenseID uuid.UUID) (int64, error) {
	var deleted int64
	for id, tx := range t.rows {
		if tx.OwnerID == ownerID && tx.RecurringExpenseID.Valid && tx.RecurringExpenseID.UUID == recurringExpenseID {
			delete(t.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

func (t *fakeTransactionTable) ExistsByCategory(_ context.Context, ownerID uuid.UUID, categoryName string) (bool, error) {
	for _, tx := range t.rows {
		if tx.OwnerID == ownerID && tx.Category == categoryName {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTransactionTable) UpdateCategory(_ context.Context, ownerID uuid.UUID, oldName, newName string) (int64, error) {
	var updated int64
	for _, tx := range t.rows {
		if tx.OwnerID == ownerID && tx.Category == oldName {
			tx.Category = newName
			updated++
		}
	}
	return updated, nil
}

func (t *fakeTransactionTable) SumByTypeInRange(_ context.Context, ownerID uuid.UUID, txType ledger.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range t.rows {
		if tx.OwnerID != ownerID || tx.Type != txType {
			continue
		}
		if tx.TransactionDate.Before(from) || !tx.TransactionDate.Before(to) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total, nil
}

// linkedPayments counts the payment transactions linked to a template in a month.
func (t *fakeTransactionTable) linkedPayments(recurringExpenseID uuid.UUID, month string) int {
	count := 0
	for _, tx := range t.rows {
		if tx.IsRecurringPayment && tx.RecurringExpenseID.Valid &&
			tx.RecurringExpenseID.UUID == recurringExpenseID &&
			MonthKey(tx.TransactionDate) == month {
			count++
		}
	}
	return count
}

type fakeExpenseTable struct {
	rows map[uuid.UUID]*recurring.Expense

	updatePaidMonthsErr error
}

func newFakeExpenseTable() *fakeExpenseTable {
	return &fakeExpenseTable{rows: make(map[uuid.UUID]*recurring.Expense)}
}

func (t *fakeExpenseTable) Insert(_ context.Context, create *recurring.ExpenseCreate) (uuid.UUID, error) {
	id := uuid.Must(uuid.NewV4())
	t.rows[id] = &recurring.Expense{
		ID:            id,
		OwnerID:       create.OwnerID,
		Description:   create.Description,
		Category:      create.Category,
		Amount:        create.Amount,
		DueDay:        create.DueDay,
		PaymentMethod: create.PaymentMethod,
		RepeatMonths:  create.RepeatMonths,
		MonthlyValues: recurring.MonthAmounts{},
		PaidMonths:    nil,
		CreatedAt:     time.Now(),
	}
	return id, nil
}

func (t *fakeExpenseTable) FindByID(_ context.Context, ownerID, id uuid.UUID) (*recurring.Expense, error) {
	expense, ok := t.rows[id]
	if !ok || expense.OwnerID != ownerID {
		return nil, nil
	}
	return expense, nil
}

func (t *fakeExpenseTable) List(_ context.Context, ownerID uuid.UUID) ([]*recurring.Expense, error) {
	var out []*recurring.Expense
	for _, expense := range t.rows {
		if expense.OwnerID == ownerID {
			out = append(out, expense)
		}
	}
	return out, nil
}

func (t *fakeExpenseTable) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	expense, ok := t.rows[id]
	if ok && expense.OwnerID == ownerID {
		delete(t.rows, id)
	}
	return nil
}

func (t *fakeExpenseTable) UpdatePaidMonths(_ context.Context, ownerID, id uuid.UUID, paidMonths []string) error {
	if t.updatePaidMonthsErr != nil {
		return t.updatePaidMonthsErr
	}
	expense, ok := t.rows[id]
	if ok && expense.OwnerID == ownerID {
		expense.PaidMonths = paidMonths
	}
	return nil
}

func (t *fakeExpenseTable) UpdateMonthlyValues(_ context.Context, ownerID, id uuid.UUID, monthlyValues recurring.MonthAmounts) error {
	expense, ok := t.rows[id]
	if ok && expense.OwnerID == ownerID {
		expense.MonthlyValues = monthlyValues
	}
	return nil
}

func (t *fakeExpenseTable) ExistsByCategory(_ context.Context, ownerID uuid.UUID, categoryName string) (bool, error) {
	for _, expense := range t.rows {
		if expense.OwnerID == ownerID && expense.Category == categoryName {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeExpenseTable) UpdateCategory(_ context.Context, ownerID uuid.UUID, oldName, newName string) (int64, error) {
	var updated int64
	for _, expense := range t.rows {
		if expense.OwnerID == ownerID && expense.Category == oldName {
			expense.Category = newName
			updated++
		}
	}
	return updated, nil
}

type fakeGoalTable struct {
	rows map[uuid.UUID]*goal.Goal
}

func newFakeGoalTable() *fakeGoalTable {
	return &fakeGoalTable{rows: make(map[uuid.UUID]*goal.Goal)}
}

func (t *fakeGoalTable) Insert(_ context.Context, create *goal.GoalCreate) (uuid.UUID, error) {
	id := uuid.Must(uuid.NewV4())
	t.rows[id] = &goal.Goal{
		ID:             id,
		OwnerID:        create.OwnerID,
		Name:           create.Name,
		TargetAmount:   create.TargetAmount,
		CurrentAmount:  decimal.Zero,
		TargetDate:     create.TargetDate,
		SavingLocation: create.SavingLocation,
		CreatedAt:      time.Now(),
	}
	return id, nil
}

func (t *fakeGoalTable) FindByID(_ context.Context, ownerID, id uuid.UUID) (*goal.Goal, error) {
	g, ok := t.rows[id]
	if !ok || g.OwnerID != ownerID {
		return nil, nil
	}
	return g, nil
}

func (t *fakeGoalTable) List(_ context.Context, ownerID uuid.UUID) ([]*goal.Goal, error) {
	var out []*goal.Goal
	for _, g := range t.rows {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (t *fakeGoalTable) Update(_ context.Context, ownerID, id uuid.UUID, update *goal.GoalUpdate) error {
	g, ok := t.rows[id]
	if !ok || g.OwnerID != ownerID {
		return nil
	}
	if update.Name != nil {
		g.Name = *update.Name
	}
	if update.TargetAmount != nil {
		g.TargetAmount = *update.TargetAmount
	}
	if update.CurrentAmount != nil {
		g.CurrentAmount = *update.CurrentAmount
	}
	if update.TargetDate != nil {
		g.TargetDate = *update.TargetDate
	}
	if update.SavingLocation != nil {
		g.SavingLocation = *update.SavingLocation
	}
	return nil
}

func (t *fakeGoalTable) UpdateCurrentAmount(_ context.Context, ownerID, id uuid.UUID, amount decimal.Decimal) error {
	g, ok := t.rows[id]
	if ok && g.OwnerID == ownerID {
		g.CurrentAmount = amount
	}
	return nil
}

func (t *fakeGoalTable) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	g, ok := t.rows[id]
	if ok && g.OwnerID == ownerID {
		delete(t.rows, id)
	}
	return nil
}

type fakeInvestmentTable struct {
	rows map[uuid.UUID]*investment.Investment
}

func newFakeInvestmentTable() *fakeInvestmentTable {
	return &fakeInvestmentTable{rows: make(map[uuid.UUID]*investment.Investment)}
}

func (t *fakeInvestmentTable) Insert(_ context.Context, create *investment.InvestmentCreate) (uuid.UUID, error) {
	id := uuid.Must(uuid.NewV4())
	t.rows[id] = &investment.Investment{
		ID:               id,
		OwnerID:          create.OwnerID,
		Name:             create.Name,
		Type:             create.Type,
		Value:            create.Value,
		Installments:     create.Installments,
		InstallmentValue: create.InstallmentValue,
		StartDate:        create.StartDate,
		Description:      create.Description,
		CreatedAt:        time.Now(),
	}
	return id, nil
}

func (t *fakeInvestmentTable) FindByID(_ context.Context, ownerID, id uuid.UUID) (*investment.Investment, error) {
	inv, ok := t.rows[id]
	if !ok || inv.OwnerID != ownerID {
		return nil, nil
	}
	return inv, nil
}

func (t *fakeInvestmentTable) List(_ context.Context, ownerID uuid.UUID) ([]*investment.Investment, error) {
	var out []*investment.Investment
	for _, inv := range t.rows {
		if inv.OwnerID == ownerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (t *fakeInvestmentTable) UpdatePaidInstallments(_ context.Context, ownerID, id uuid.UUID, paidInstallments int) error {
	inv, ok := t.rows[id]
	if ok && inv.OwnerID == ownerID {
		inv.PaidInstallments = paidInstallments
	}
	return nil
}

func (t *fakeInvestmentTable) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	inv, ok := t.rows[id]
	if ok && inv.OwnerID == ownerID {
		delete(t.rows, id)
	}
	return nil
}

type fakeSummaryTable struct {
	rows map[string]*summary.MonthSummary
}

func newFakeSummaryTable() *fakeSummaryTable {
	return &fakeSummaryTable{rows: make(map[string]*summary.MonthSummary)}
}

func summaryKey(ownerID uuid.UUID, month string) string {
	return ownerID.String() + "/" + month
}

func (t *fakeSummaryTable) Upsert(_ context.Context, ownerID uuid.UUID, month string, incomeTotal, expenseTotal decimal.Decimal) error {
	t.rows[summaryKey(ownerID, month)] = &summary.MonthSummary{
		OwnerID:      ownerID,
		Month:        month,
		IncomeTotal:  incomeTotal,
		ExpenseTotal: expenseTotal,
	}
	return nil
}

func (t *fakeSummaryTable) Accumulate(_ context.Context, ownerID uuid.UUID, month string, incomeDelta, expenseDelta decimal.Decimal) error {
	key := summaryKey(ownerID, month)
	row, ok := t.rows[key]
	if !ok {
		row = &summary.MonthSummary{
			OwnerID:      ownerID,
			Month:        month,
			IncomeTotal:  decimal.Zero,
			ExpenseTotal: decimal.Zero,
		}
		t.rows[key] = row
	}
	row.IncomeTotal = row.IncomeTotal.Add(incomeDelta)
	row.ExpenseTotal = row.ExpenseTotal.Add(expenseDelta)
	return nil
}

func (t *fakeSummaryTable) Get(_ context.Context, ownerID uuid.UUID, month string) (*summary.MonthSummary, error) {
	return t.rows[summaryKey(ownerID, month)], nil
}

func (t *fakeSummaryTable) ListRange(_ context.Context, ownerID uuid.UUID, fromMonth, toMonth string) ([]*summary.MonthSummary, error) {
	var out []*summary.MonthSummary
	for _, row := range t.rows {
		if row.OwnerID == ownerID && row.Month >= fromMonth && row.Month <= toMonth {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

type fakeCategoryTable struct {
	rows map[uuid.UUID]*category.Category
}

func newFakeCategoryTable() *fakeCategoryTable {
	return &fakeCategoryTable{rows: make(map[uuid.UUID]*category.Category)}
}

func (t *fakeCategoryTable) Insert(_ context.Context, create *category.CategoryCreate) (uuid.UUID, error) {
	id := uuid.Must(uuid.NewV4())
	t.rows[id] = &category.Category{
		ID:        id,
		OwnerID:   create.OwnerID,
		Name:      create.Name,
		Type:      create.Type,
		CreatedAt: time.Now(),
	}
	return id, nil
}

func (t *fakeCategoryTable) FindByID(_ context.Context, ownerID, id uuid.UUID) (*category.Category, error) {
	c, ok := t.rows[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	return c, nil
}

func (t *fakeCategoryTable) FindByName(_ context.Context, ownerID uuid.UUID, categoryType ledger.TransactionType, name string) (*category.Category, error) {
	for _, c := range t.rows {
		if c.OwnerID == ownerID && c.Type == categoryType && strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, nil
}

func (t *fakeCategoryTable) List(_ context.Context, ownerID uuid.UUID, categoryType ledger.TransactionType) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range t.rows {
		if c.OwnerID == ownerID && c.Type == categoryType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (t *fakeCategoryTable) UpdateName(_ context.Context, ownerID, id uuid.UUID, name string) error {
	c, ok := t.rows[id]
	if ok && c.OwnerID == ownerID {
		c.Name = name
	}
	return nil
}

func (t *fakeCategoryTable) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	c, ok := t.rows[id]
	if ok && c.OwnerID == ownerID {
		delete(t.rows, id)
	}
	return nil
}

type testStore struct {
	storage *storage.Storage

	transactions *fakeTransactionTable
	expenses     *fakeExpenseTable
	goals        *fakeGoalTable
	investments  *fakeInvestmentTable
	summaries    *fakeSummaryTable
	categories   *fakeCategoryTable
}

func newTestStore() *testStore {
	transactions := newFakeTransactionTable()
	expenses := newFakeExpenseTable()
	goals := newFakeGoalTable()
	investments := newFakeInvestmentTable()
	summaries := newFakeSummaryTable()
	categories := newFakeCategoryTable()

	return &testStore{
		storage: &storage.Storage{
			Transactions:      transactions,
			RecurringExpenses: expenses,
			Goals:             goals,
			Investments:       investments,
			Summaries:         summaries,
			Categories:        categories,
		},
		transactions: transactions,
		expenses:     expenses,
		goals:        goals,
		investments:  investments,
		summaries:    summaries,
		categories:   categories,
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRunner(t *testing.T, logger *logrus.Logger) *flow.Runner {
	t.Helper()
	runner := flow.NewRunner(logger, 2)
	runner.Start()
	t.Cleanup(runner.Stop)
	return runner
}
