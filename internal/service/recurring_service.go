package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/flow"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
	"github.com/carson-networks/finance-server/internal/storage/recurring"
)

// recurringPaymentSuffix annotates ledger entries generated by the paid
// toggle so they are recognizable next to manually entered expenses.
const recurringPaymentSuffix = " (Despesa Fixa)"

// RecurringService owns the recurring-expense templates and the paid-state
// machine: for every (template, month) pair, the month is in paidMonths iff
// exactly one linked payment transaction exists.
type RecurringService struct {
	store      *storage.Storage
	runner     *flow.Runner
	maintainer SummaryMaintainer
	logger     *logrus.Logger

	// locks debounces same-process double toggles per (template, month).
	// Cross-process safety comes from the store lookup in the create step.
	locks *keyedMutex

	cascadeDelete bool
}

func NewRecurringService(store *storage.Storage, runner *flow.Runner, maintainer SummaryMaintainer, logger *logrus.Logger, cascadeDelete bool) *RecurringService {
	return &RecurringService{
		store:         store,
		runner:        runner,
		maintainer:    maintainer,
		logger:        logger,
		locks:         newKeyedMutex(),
		cascadeDelete: cascadeDelete,
	}
}

// CreateExpense registers a new template with empty overrides and paid months.
func (s *RecurringService) CreateExpense(ctx context.Context, create *recurring.ExpenseCreate) (uuid.UUID, error) {
	return s.store.RecurringExpenses.Insert(ctx, create)
}

// ListExpenses returns all of the owner's templates.
func (s *RecurringService) ListExpenses(ctx context.Context, ownerID uuid.UUID) ([]*recurring.Expense, error) {
	return s.store.RecurringExpenses.List(ctx, ownerID)
}

// MonthlyExpenseValue resolves the effective amount for a template in a
// month: the per-month override if one is set (an explicit zero counts), else
// a nonzero base amount, else nil meaning "not yet set". Unknown ids resolve
// to nil rather than an error. Every operation that needs "the amount due
// this month" goes through this resolution; there is no fallback logic
// anywhere else.
func (s *RecurringService) MonthlyExpenseValue(ctx context.Context, ownerID, id uuid.UUID, month string) (*decimal.Decimal, error) {
	if _, _, err := MonthBounds(month); err != nil {
		return nil, err
	}

	expense, err := s.store.RecurringExpenses.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	return effectiveAmount(expense, month), nil
}

func effectiveAmount(expense *recurring.Expense, month string) *decimal.Decimal {
	if override, ok := expense.MonthlyValues[month]; ok {
		return &override
	}
	if !expense.Amount.IsZero() {
		base := expense.Amount
		return &base
	}
	return nil
}

// SetMonthlyValue sets (or, with a nil value, removes) the override for one
// month. An already-created payment transaction keeps its original amount;
// overrides only affect future toggles to paid.
func (s *RecurringService) SetMonthlyValue(ctx context.Context, ownerID, id uuid.UUID, month string, value *decimal.Decimal) error {
	if _, _, err := MonthBounds(month); err != nil {
		return err
	}

	expense, err := s.store.RecurringExpenses.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrNotFound
	}

	monthlyValues := make(recurring.MonthAmounts, len(expense.MonthlyValues))
	for key, amount := range expense.MonthlyValues {
		monthlyValues[key] = amount
	}
	if value == nil {
		delete(monthlyValues, month)
	} else {
		monthlyValues[month] = *value
	}

	return s.store.RecurringExpenses.UpdateMonthlyValues(ctx, ownerID, id, monthlyValues)
}

// MarkPaid toggles a template's paid state for a month.
//
// Unpaid to paid: the month joins paidMonths and exactly one linked expense
// transaction is created, dated on the due day clamped into the month. A nil
// effective amount rejects the whole operation before any state changes; a
// zero amount marks the month paid without creating a transaction.
//
// Paid to unpaid: the month leaves paidMonths and the linked transaction, if
// any, is deleted. Re-entrant calls in either direction are successful no-ops.
func (s *RecurringService) MarkPaid(ctx context.Context, ownerID, id uuid.UUID, month string, paid bool) error {
	if _, _, err := MonthBounds(month); err != nil {
		return err
	}

	unlock := s.locks.Lock(ownerID.String() + "_" + id.String() + "_" + month)
	defer unlock()

	expense, err := s.store.RecurringExpenses.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if paid {
		if expense == nil {
			return ErrNotFound
		}
		if expense.IsPaid(month) {
			return nil
		}
		return s.markPaid(ctx, ownerID, expense, month)
	}

	// The template may have been deleted from under us; nothing to unpay.
	if expense == nil || !expense.IsPaid(month) {
		return nil
	}
	return s.markUnpaid(ctx, ownerID, expense, month)
}

func (s *RecurringService) markPaid(ctx context.Context, ownerID uuid.UUID, expense *recurring.Expense, month string) error {
	amount := effectiveAmount(expense, month)
	if amount == nil {
		return ErrAmountNotSet
	}

	dueDate, err := DueDateInMonth(month, expense.DueDay)
	if err != nil {
		return err
	}
	monthStart, monthEnd, err := MonthBounds(month)
	if err != nil {
		return err
	}

	paidMonths := append(append([]string{}, expense.PaidMonths...), month)

	var createdTx *ledger.Transaction

	steps := []flow.Step{
		{
			Name: "persist-paid-month",
			Run: func(ctx context.Context) error {
				return s.store.RecurringExpenses.UpdatePaidMonths(ctx, ownerID, expense.ID, paidMonths)
			},
		},
	}

	if amount.IsPositive() {
		steps = append(steps, flow.Step{
			Name: "create-payment-transaction",
			Run: func(ctx context.Context) error {
				// The store lookup, not the keyed mutex, is what makes this
				// idempotent across tabs and restarts.
				existing, err := s.store.Transactions.FindRecurringPayment(ctx, ownerID, expense.ID, monthStart, monthEnd)
				if err != nil {
					return err
				}
				if existing != nil {
					s.logger.WithFields(logrus.Fields{
						"recurringExpenseID": expense.ID,
						"month":              month,
					}).Info("RecurringService.MarkPaid.payment already exists")
					return nil
				}

				create := &ledger.TransactionCreate{
					OwnerID:            ownerID,
					TransactionDate:    dueDate,
					Description:        expense.Description + recurringPaymentSuffix,
					Category:           expense.Category,
					Amount:             *amount,
					Type:               ledger.TransactionTypeExpense,
					PaymentMethod:      expense.PaymentMethod,
					IsRecurringPayment: true,
					RecurringExpenseID: uuid.NullUUID{UUID: expense.ID, Valid: true},
				}
				txID, err := s.store.Transactions.Insert(ctx, create)
				if err != nil {
					return err
				}

				createdTx = &ledger.Transaction{
					ID:                 txID,
					OwnerID:            ownerID,
					TransactionDate:    dueDate,
					Amount:             *amount,
					Type:               ledger.TransactionTypeExpense,
					IsRecurringPayment: true,
					RecurringExpenseID: uuid.NullUUID{UUID: expense.ID, Valid: true},
				}
				return nil
			},
		})
	}

	steps = append(steps, flow.Step{
		Name: "update-monthly-summary",
		Run: func(ctx context.Context) error {
			if createdTx == nil {
				return nil
			}
			return s.maintainer.TransactionAdded(ctx, ownerID, createdTx)
		},
	})

	return s.runner.Process(ctx, flow.Flow{Name: "mark-recurring-paid", Steps: steps})
}

func (s *RecurringService) markUnpaid(ctx context.Context, ownerID uuid.UUID, expense *recurring.Expense, month string) error {
	monthStart, monthEnd, err := MonthBounds(month)
	if err != nil {
		return err
	}

	paidMonths := make([]string, 0, len(expense.PaidMonths))
	for _, paid := range expense.PaidMonths {
		if paid != month {
			paidMonths = append(paidMonths, paid)
		}
	}

	var removedTx *ledger.Transaction

	return s.runner.Process(ctx, flow.Flow{
		Name: "mark-recurring-unpaid",
		Steps: []flow.Step{
			{
				Name: "persist-unpaid-month",
				Run: func(ctx context.Context) error {
					return s.store.RecurringExpenses.UpdatePaidMonths(ctx, ownerID, expense.ID, paidMonths)
				},
			},
			{
				Name: "delete-payment-transaction",
				Run: func(ctx context.Context) error {
					linked, err := s.store.Transactions.FindRecurringPayment(ctx, ownerID, expense.ID, monthStart, monthEnd)
					if err != nil {
						return err
					}
					// No linked transaction is still a consistent state, e.g.
					// a zero-amount paid month.
					if linked == nil {
						return nil
					}
					if err := s.store.Transactions.Delete(ctx, ownerID, linked.ID); err != nil {
						return err
					}
					removedTx = linked
					return nil
				},
			},
			{
				Name: "update-monthly-summary",
				Run: func(ctx context.Context) error {
					if removedTx == nil {
						return nil
					}
					return s.maintainer.TransactionRemoved(ctx, ownerID, removedTx)
				},
			},
		},
	})
}

// DeleteExpense removes a template. With cascade enabled (the default), its
// linked payment transactions go too and the affected months are rebuilt.
func (s *RecurringService) DeleteExpense(ctx context.Context, ownerID, id uuid.UUID) error {
	expense, err := s.store.RecurringExpenses.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return nil
	}

	if !s.cascadeDelete {
		return s.store.RecurringExpenses.Delete(ctx, ownerID, id)
	}

	var affectedMonths []string

	return s.runner.Process(ctx, flow.Flow{
		Name: "delete-recurring-expense",
		Steps: []flow.Step{
			{
				Name: "delete-linked-transactions",
				Run: func(ctx context.Context) error {
					linked, err := s.store.Transactions.ListByRecurringExpense(ctx, ownerID, id)
					if err != nil {
						return err
					}
					seen := make(map[string]bool)
					for _, tx := range linked {
						month := MonthKey(tx.TransactionDate)
						if !seen[month] {
							seen[month] = true
							affectedMonths = append(affectedMonths, month)
						}
					}

					deleted, err := s.store.Transactions.DeleteByRecurringExpense(ctx, ownerID, id)
					if err != nil {
						return err
					}
					s.logger.WithFields(logrus.Fields{
						"recurringExpenseID": id,
						"deletedCount":       deleted,
					}).Info("RecurringService.DeleteExpense.linked transactions removed")
					return nil
				},
			},
			{
				Name: "delete-template",
				Run: func(ctx context.Context) error {
					return s.store.RecurringExpenses.Delete(ctx, ownerID, id)
				},
			},
			{
				Name: "rebuild-summaries",
				Run: func(ctx context.Context) error {
					for _, month := range affectedMonths {
						if err := s.maintainer.RebuildMonth(ctx, ownerID, month); err != nil {
							return err
						}
					}
					return nil
				},
			},
		},
	})
}
