package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/storage/recurring"
)

// ListExpensesInput is the Huma input for listing recurring expenses.
type ListExpensesInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
}

// ListExpensesResponseBody is the response body for listing recurring expenses.
type ListExpensesResponseBody struct {
	Expenses []Expense `json:"expenses" doc:"The owner's recurring expense templates"`
}

// ListExpensesOutput is the Huma output for listing recurring expenses.
type ListExpensesOutput struct {
	Body ListExpensesResponseBody
}

type expenseLister interface {
	ListExpenses(ctx context.Context, ownerID uuid.UUID) ([]*recurring.Expense, error)
}

// ListExpensesHandler handles GET /v1/recurring-expense.
type ListExpensesHandler struct {
	RecurringService expenseLister
}

func NewListExpensesHandler(svc expenseLister) *ListExpensesHandler {
	return &ListExpensesHandler{RecurringService: svc}
}

func (h *ListExpensesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-recurring-expenses",
		Method:      http.MethodGet,
		Path:        "/v1/recurring-expense",
		Summary:     "List recurring expenses",
		Tags:        []string{"Recurring Expenses"},
	}, h.handle)
}

func (h *ListExpensesHandler) handle(ctx context.Context, input *ListExpensesInput) (*ListExpensesOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}

	expenses, err := h.RecurringService.ListExpenses(ctx, ownerID)
	if err != nil {
		return nil, httperr.FromService(err, "failed to list recurring expenses")
	}

	resp := ListExpensesResponseBody{Expenses: make([]Expense, len(expenses))}
	for i, expense := range expenses {
		resp.Expenses[i] = fromStorage(expense)
	}

	return &ListExpensesOutput{Body: resp}, nil
}
