package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/logging"
)

// ContributeBody is the request body for contributing to a goal.
type ContributeBody struct {
	Amount        string `json:"amount" required:"true" doc:"Positive decimal amount"`
	PaymentMethod string `json:"paymentMethod" doc:"Payment method"`
}

// ContributeInput is the Huma input for contributing to a goal.
type ContributeInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Goal UUID"`
	Body    ContributeBody
}

// ContributeOutput is the Huma output for contributing to a goal.
type ContributeOutput struct {
	Status int
}

type goalContributor interface {
	Contribute(ctx context.Context, ownerID, goalID uuid.UUID, amount decimal.Decimal, paymentMethod string) error
}

// ContributeHandler handles POST /v1/goal/{id}/contribute. A contribution
// writes an expense transaction and advances the goal's running total.
type ContributeHandler struct {
	GoalService goalContributor
}

func NewContributeHandler(svc goalContributor) *ContributeHandler {
	return &ContributeHandler{GoalService: svc}
}

func (h *ContributeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "contribute-to-goal",
		Method:      http.MethodPost,
		Path:        "/v1/goal/{id}/contribute",
		Summary:     "Contribute to goal",
		Description: "Records a contribution: a flagged expense transaction plus an increment of the goal's accumulated amount.",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func (h *ContributeHandler) handle(ctx context.Context, input *ContributeInput) (*ContributeOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("goalContributeMs")
	}
	err = h.GoalService.Contribute(ctx, ownerID, id, amount, input.Body.PaymentMethod)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(err, "failed to record contribution")
	}

	return &ContributeOutput{Status: http.StatusNoContent}, nil
}
