package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
)

// GetMonthlyValueInput is the Huma input for resolving a month's effective amount.
type GetMonthlyValueInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Template UUID"`
	Month   string `query:"month" required:"true" pattern:"^\\d{4}-\\d{2}$" doc:"Month key in YYYY-MM format"`
}

// GetMonthlyValueResponse is the response body for resolving a month's
// effective amount. Value is null when no override exists and the base amount
// is zero, meaning the amount has not been set yet.
type GetMonthlyValueResponse struct {
	Value *string `json:"value" doc:"Effective decimal amount for the month, null when not yet set"`
}

// GetMonthlyValueOutput is the Huma output for resolving a month's effective amount.
type GetMonthlyValueOutput struct {
	Body GetMonthlyValueResponse
}

type monthlyValueResolver interface {
	MonthlyExpenseValue(ctx context.Context, ownerID, id uuid.UUID, month string) (*decimal.Decimal, error)
}

// GetMonthlyValueHandler handles GET /v1/recurring-expense/{id}/monthly-value.
type GetMonthlyValueHandler struct {
	RecurringService monthlyValueResolver
}

func NewGetMonthlyValueHandler(svc monthlyValueResolver) *GetMonthlyValueHandler {
	return &GetMonthlyValueHandler{RecurringService: svc}
}

func (h *GetMonthlyValueHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-recurring-expense-monthly-value",
		Method:      http.MethodGet,
		Path:        "/v1/recurring-expense/{id}/monthly-value",
		Summary:     "Resolve monthly amount",
		Description: "Resolves the effective amount for a month: the override if set, else a nonzero base amount, else null.",
		Tags:        []string{"Recurring Expenses"},
	}, h.handle)
}

func (h *GetMonthlyValueHandler) handle(ctx context.Context, input *GetMonthlyValueInput) (*GetMonthlyValueOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	value, err := h.RecurringService.MonthlyExpenseValue(ctx, ownerID, id, input.Month)
	if err != nil {
		return nil, httperr.FromService(err, "failed to resolve monthly value")
	}

	resp := GetMonthlyValueResponse{}
	if value != nil {
		formatted := value.String()
		resp.Value = &formatted
	}

	return &GetMonthlyValueOutput{Body: resp}, nil
}
