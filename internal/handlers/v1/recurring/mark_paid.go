package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/logging"
)

// MarkPaidBody is the request body for toggling a month's paid state.
type MarkPaidBody struct {
	Month string `json:"month" required:"true" pattern:"^\\d{4}-\\d{2}$" doc:"Month key in YYYY-MM format"`
	Paid  bool   `json:"paid" doc:"Target paid state"`
}

// MarkPaidInput is the Huma input for toggling a month's paid state.
type MarkPaidInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Template UUID"`
	Body    MarkPaidBody
}

// MarkPaidOutput is the Huma output for toggling a month's paid state.
type MarkPaidOutput struct {
	Status int
}

type paidMarker interface {
	MarkPaid(ctx context.Context, ownerID, id uuid.UUID, month string, paid bool) error
}

// MarkPaidHandler handles PUT /v1/recurring-expense/{id}/paid. Marking paid
// creates the month's payment transaction; marking unpaid removes it.
type MarkPaidHandler struct {
	RecurringService paidMarker
}

func NewMarkPaidHandler(svc paidMarker) *MarkPaidHandler {
	return &MarkPaidHandler{RecurringService: svc}
}

func (h *MarkPaidHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "mark-recurring-expense-paid",
		Method:      http.MethodPut,
		Path:        "/v1/recurring-expense/{id}/paid",
		Summary:     "Toggle recurring expense paid state",
		Description: "Marks a month paid or unpaid, creating or removing the linked payment transaction. Repeated calls with the same state are no-ops.",
		Tags:        []string{"Recurring Expenses"},
	}, h.handle)
}

func (h *MarkPaidHandler) handle(ctx context.Context, input *MarkPaidInput) (*MarkPaidOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	var stopTimer func()
	if logData != nil {
		logData.AddData("month", input.Body.Month)
		logData.AddData("paid", input.Body.Paid)
		stopTimer = logData.AddTiming("markPaidMs")
	}
	err = h.RecurringService.MarkPaid(ctx, ownerID, id, input.Body.Month, input.Body.Paid)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(err, "failed to update paid state")
	}

	return &MarkPaidOutput{Status: http.StatusNoContent}, nil
}
