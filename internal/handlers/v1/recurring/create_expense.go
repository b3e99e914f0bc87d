package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/storage/recurring"
)

// CreateExpenseBody is the request body for creating a recurring expense.
type CreateExpenseBody struct {
	Description   string `json:"description" required:"true" doc:"Description"`
	Category      string `json:"category" required:"true" doc:"Category string"`
	Amount        string `json:"amount" doc:"Base decimal amount, omit or 0 when not yet known"`
	DueDay        int    `json:"dueDay" required:"true" minimum:"1" maximum:"31" doc:"Nominal due day of month"`
	PaymentMethod string `json:"paymentMethod" doc:"Payment method"`
	RepeatMonths  int    `json:"repeatMonths" minimum:"0" doc:"Number of months the expense repeats, 0 means indefinitely"`
}

// CreateExpenseInput is the Huma input for creating a recurring expense.
type CreateExpenseInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    CreateExpenseBody
}

// CreateExpenseResponse is the response body for creating a recurring expense.
type CreateExpenseResponse struct {
	ID string `json:"id" doc:"Created template UUID"`
}

// CreateExpenseOutput is the Huma output for creating a recurring expense.
type CreateExpenseOutput struct {
	Status int
	Body   CreateExpenseResponse
}

type expenseCreator interface {
	CreateExpense(ctx context.Context, create *recurring.ExpenseCreate) (uuid.UUID, error)
}

// CreateExpenseHandler handles POST /v1/recurring-expense.
type CreateExpenseHandler struct {
	RecurringService expenseCreator
}

func NewCreateExpenseHandler(svc expenseCreator) *CreateExpenseHandler {
	return &CreateExpenseHandler{RecurringService: svc}
}

func (h *CreateExpenseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-recurring-expense",
		Method:      http.MethodPost,
		Path:        "/v1/recurring-expense",
		Summary:     "Create recurring expense",
		Description: "Creates a recurring expense template with empty overrides and no paid months.",
		Tags:        []string{"Recurring Expenses"},
	}, h.handle)
}

func (h *CreateExpenseHandler) handle(ctx context.Context, input *CreateExpenseInput) (*CreateExpenseOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}

	amount := decimal.Zero
	if input.Body.Amount != "" {
		amount, err = decimal.NewFromString(input.Body.Amount)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
	}

	id, err := h.RecurringService.CreateExpense(ctx, &recurring.ExpenseCreate{
		OwnerID:       ownerID,
		Description:   input.Body.Description,
		Category:      input.Body.Category,
		Amount:        amount,
		DueDay:        input.Body.DueDay,
		PaymentMethod: input.Body.PaymentMethod,
		RepeatMonths:  input.Body.RepeatMonths,
	})
	if err != nil {
		return nil, httperr.FromService(err, "failed to create recurring expense")
	}

	return &CreateExpenseOutput{
		Status: http.StatusCreated,
		Body:   CreateExpenseResponse{ID: id.String()},
	}, nil
}
