package service

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/flow"
	"github.com/carson-networks/finance-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Recurring   *RecurringService
	Goal        *GoalService
	Investment  *InvestmentService
	Summary     *SummaryService
	Category    *CategoryService
}

// NewService wires the services against one storage, flow runner, and the
// configured summary maintainer.
func NewService(store *storage.Storage, runner *flow.Runner, env *config.Config, logger *logrus.Logger) *Service {
	maintainer := NewSummaryMaintainer(env.SummaryStrategy, store)

	return &Service{
		Transaction: NewTransactionService(store, runner, maintainer, logger),
		Recurring:   NewRecurringService(store, runner, maintainer, logger, env.CascadeDeleteRecurring),
		Goal:        NewGoalService(store, runner, maintainer, logger),
		Investment:  NewInvestmentService(store, runner, maintainer, logger),
		Summary:     NewSummaryService(store, maintainer),
		Category:    NewCategoryService(store, runner, logger),
	}
}
