package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/logging"
)

// DeleteExpenseInput is the Huma input for deleting a recurring expense.
type DeleteExpenseInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Template UUID"`
}

// DeleteExpenseOutput is the Huma output for deleting a recurring expense.
type DeleteExpenseOutput struct {
	Status int
}

type expenseDeleter interface {
	DeleteExpense(ctx context.Context, ownerID, id uuid.UUID) error
}

// DeleteExpenseHandler handles DELETE /v1/recurring-expense/{id}.
type DeleteExpenseHandler struct {
	RecurringService expenseDeleter
}

func NewDeleteExpenseHandler(svc expenseDeleter) *DeleteExpenseHandler {
	return &DeleteExpenseHandler{RecurringService: svc}
}

func (h *DeleteExpenseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-recurring-expense",
		Method:      http.MethodDelete,
		Path:        "/v1/recurring-expense/{id}",
		Summary:     "Delete recurring expense",
		Description: "Deletes a template. When cascade delete is enabled, its linked payment transactions are removed and the affected months rebuilt.",
		Tags:        []string{"Recurring Expenses"},
	}, h.handle)
}

func (h *DeleteExpenseHandler) handle(ctx context.Context, input *DeleteExpenseInput) (*DeleteExpenseOutput, error) {
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
		stopTimer = logData.AddTiming("deleteExpenseMs")
	}
	err = h.RecurringService.DeleteExpense(ctx, ownerID, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(err, "failed to delete recurring expense")
	}

	return &DeleteExpenseOutput{Status: http.StatusNoContent}, nil
}
