package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/flow"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/investment"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
)

const investmentContributionCategory = "Investimentos"

// InvestmentService owns installment-based assets. The paid-installments
// counter and the contribution transactions are two separate mechanisms that
// are deliberately not reconciled with each other: marking an installment
// paid never creates a transaction, and a contribution never moves the
// counter.
type InvestmentService struct {
	store      *storage.Storage
	runner     *flow.Runner
	maintainer SummaryMaintainer
	logger     *logrus.Logger
}

func NewInvestmentService(store *storage.Storage, runner *flow.Runner, maintainer SummaryMaintainer, logger *logrus.Logger) *InvestmentService {
	return &InvestmentService{store: store, runner: runner, maintainer: maintainer, logger: logger}
}

func (s *InvestmentService) CreateInvestment(ctx context.Context, create *investment.InvestmentCreate) (uuid.UUID, error) {
	return s.store.Investments.Insert(ctx, create)
}

func (s *InvestmentService) ListInvestments(ctx context.Context, ownerID uuid.UUID) ([]*investment.Investment, error) {
	return s.store.Investments.List(ctx, ownerID)
}

func (s *InvestmentService) DeleteInvestment(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.store.Investments.Delete(ctx, ownerID, id)
}

// SetPaidInstallments sets the counter directly, clamped to
// [0, installments]. No transaction side effect.
func (s *InvestmentService) SetPaidInstallments(ctx context.Context, ownerID, id uuid.UUID, paidInstallments int) error {
	existing, err := s.store.Investments.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if paidInstallments < 0 {
		paidInstallments = 0
	}
	if paidInstallments > existing.Installments {
		paidInstallments = existing.Installments
	}

	return s.store.Investments.UpdatePaidInstallments(ctx, ownerID, id, paidInstallments)
}

// Contribute records an investment contribution as a flagged expense
// transaction. The paid-installments counter is untouched.
func (s *InvestmentService) Contribute(ctx context.Context, ownerID, investmentID uuid.UUID, amount decimal.Decimal, paymentMethod string) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	target, err := s.store.Investments.FindByID(ctx, ownerID, investmentID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrNotFound
	}

	var createdTx *ledger.Transaction

	return s.runner.Process(ctx, flow.Flow{
		Name: "investment-contribution",
		Steps: []flow.Step{
			{
				Name: "create-contribution-transaction",
				Run: func(ctx context.Context) error {
					transactionDate := time.Now()
					txID, err := s.store.Transactions.Insert(ctx, &ledger.TransactionCreate{
						OwnerID:                  ownerID,
						TransactionDate:          transactionDate,
						Description:              target.Name,
						Category:                 investmentContributionCategory,
						Amount:                   amount,
						Type:                     ledger.TransactionTypeExpense,
						PaymentMethod:            paymentMethod,
						IsInvestmentContribution: true,
						InvestmentID:             uuid.NullUUID{UUID: investmentID, Valid: true},
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
				Name: "update-monthly-summary",
				Run: func(ctx context.Context) error {
					return s.maintainer.TransactionAdded(ctx, ownerID, createdTx)
				},
			},
		},
	})
}
