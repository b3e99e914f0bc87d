package summary

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/storage/summary"
)

// MonthSummary is the API response model for one month's totals.
type MonthSummary struct {
	Month        string `json:"month" doc:"Month key in YYYY-MM format"`
	IncomeTotal  string `json:"incomeTotal" doc:"Sum of income transactions in the month"`
	ExpenseTotal string `json:"expenseTotal" doc:"Sum of expense transactions in the month"`
	Balance      string `json:"balance" doc:"incomeTotal minus expenseTotal"`
}

// WindowInput is the Huma input for the month-window view.
type WindowInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	End     string `query:"end" format:"date-time" doc:"RFC3339 end of the window, defaults to now"`
	Months  int    `query:"months" minimum:"1" maximum:"60" doc:"Number of trailing months, defaults to 12"`
}

// WindowResponseBody is the response body for the month-window view.
type WindowResponseBody struct {
	Summaries []MonthSummary `json:"summaries" doc:"Oldest month first"`
}

// WindowOutput is the Huma output for the month-window view.
type WindowOutput struct {
	Body WindowResponseBody
}

type windowProvider interface {
	Window(ctx context.Context, ownerID uuid.UUID, end time.Time, months int) ([]*summary.MonthSummary, error)
}

// WindowHandler handles GET /v1/summary. Totals are derived from the ledger
// at read time; only the current month's rollup row is persisted back.
type WindowHandler struct {
	SummaryService windowProvider
}

func NewWindowHandler(svc windowProvider) *WindowHandler {
	return &WindowHandler{SummaryService: svc}
}

func (h *WindowHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary-window",
		Method:      http.MethodGet,
		Path:        "/v1/summary",
		Summary:     "Monthly summary window",
		Description: "Returns income and expense totals for the trailing months ending at the given date.",
		Tags:        []string{"Summaries"},
	}, h.handle)
}

func (h *WindowHandler) handle(ctx context.Context, input *WindowInput) (*WindowOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}

	end := time.Now()
	if input.End != "" {
		end, err = time.Parse(time.RFC3339, input.End)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid end", err)
		}
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("summaryWindowMs")
	}
	summaries, err := h.SummaryService.Window(ctx, ownerID, end, input.Months)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(err, "failed to compute summary window")
	}

	resp := WindowResponseBody{Summaries: make([]MonthSummary, len(summaries))}
	for i, s := range summaries {
		resp.Summaries[i] = MonthSummary{
			Month:        s.Month,
			IncomeTotal:  s.IncomeTotal.String(),
			ExpenseTotal: s.ExpenseTotal.String(),
			Balance:      s.IncomeTotal.Sub(s.ExpenseTotal).String(),
		}
	}

	return &WindowOutput{Body: resp}, nil
}
