package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/handlers/v1/category"
	"github.com/carson-networks/finance-server/internal/handlers/v1/goal"
	"github.com/carson-networks/finance-server/internal/handlers/v1/investment"
	"github.com/carson-networks/finance-server/internal/handlers/v1/profile"
	"github.com/carson-networks/finance-server/internal/handlers/v1/recurring"
	"github.com/carson-networks/finance-server/internal/handlers/v1/status"
	"github.com/carson-networks/finance-server/internal/handlers/v1/summary"
	"github.com/carson-networks/finance-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/pin"
	"github.com/carson-networks/finance-server/internal/service"
)

type Rest struct {
	Logger       *logrus.Logger
	Port         string
	Service      *service.Service
	PinValidator pin.Validator
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("Finance Server", "1.0.0"))
	humaAPI.UseMiddleware(r.logDataMiddleware)

	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(humaAPI)

	recurring.NewCreateExpenseHandler(r.Service.Recurring).Register(humaAPI)
	recurring.NewListExpensesHandler(r.Service.Recurring).Register(humaAPI)
	recurring.NewMarkPaidHandler(r.Service.Recurring).Register(humaAPI)
	recurring.NewGetMonthlyValueHandler(r.Service.Recurring).Register(humaAPI)
	recurring.NewSetMonthlyValueHandler(r.Service.Recurring).Register(humaAPI)
	recurring.NewDeleteExpenseHandler(r.Service.Recurring).Register(humaAPI)

	goal.NewCreateGoalHandler(r.Service.Goal).Register(humaAPI)
	goal.NewListGoalsHandler(r.Service.Goal).Register(humaAPI)
	goal.NewEditGoalHandler(r.Service.Goal).Register(humaAPI)
	goal.NewContributeHandler(r.Service.Goal).Register(humaAPI)
	goal.NewDeleteGoalHandler(r.Service.Goal).Register(humaAPI)

	investment.NewCreateInvestmentHandler(r.Service.Investment).Register(humaAPI)
	investment.NewListInvestmentsHandler(r.Service.Investment).Register(humaAPI)
	investment.NewSetInstallmentsHandler(r.Service.Investment).Register(humaAPI)
	investment.NewContributeHandler(r.Service.Investment).Register(humaAPI)
	investment.NewDeleteInvestmentHandler(r.Service.Investment).Register(humaAPI)

	category.NewCreateCategoryHandler(r.Service.Category).Register(humaAPI)
	category.NewListCategoriesHandler(r.Service.Category).Register(humaAPI)
	category.NewRenameCategoryHandler(r.Service.Category).Register(humaAPI)
	category.NewDeleteCategoryHandler(r.Service.Category).Register(humaAPI)

	summary.NewWindowHandler(r.Service.Summary).Register(humaAPI)

	profile.NewSetPinHandler(r.PinValidator).Register(humaAPI)
	profile.NewSwitchModeHandler(r.PinValidator).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

// logDataMiddleware gives every operation a request-scoped LogData and writes
// the collected fields once the handler returns.
func (r *Rest) logDataMiddleware(ctx huma.Context, next func(huma.Context)) {
	logData := logging.NewLogData(r.Logger)
	ctx = huma.WithContext(ctx, logging.WithLogData(ctx.Context(), logData))

	endTimer := logData.AddTiming("duration")
	next(ctx)
	endTimer()

	logData.Log().Infof("Handler.%v.Complete", ctx.Operation().OperationID)
}
