package recurring

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
)

// SetMonthlyValueBody is the request body for setting a per-month override.
// A null value removes the override, falling back to the base amount.
type SetMonthlyValueBody struct {
	Month string  `json:"month" required:"true" pattern:"^\\d{4}-\\d{2}$" doc:"Month key in YYYY-MM format"`
	Value *string `json:"value" doc:"Override decimal amount; null removes the override. An explicit 0 is a valid override."`
}

// SetMonthlyValueInput is the Huma input for setting a per-month override.
type SetMonthlyValueInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Template UUID"`
	Body    SetMonthlyValueBody
}

// SetMonthlyValueOutput is the Huma output for setting a per-month override.
type SetMonthlyValueOutput struct {
	Status int
}

type monthlyValueSetter interface {
	SetMonthlyValue(ctx context.Context, ownerID, id uuid.UUID, month string, value *decimal.Decimal) error
}

// SetMonthlyValueHandler handles PUT /v1/recurring-expense/{id}/monthly-value.
type SetMonthlyValueHandler struct {
	RecurringService monthlyValueSetter
}

func NewSetMonthlyValueHandler(svc monthlyValueSetter) *SetMonthlyValueHandler {
	return &SetMonthlyValueHandler{RecurringService: svc}
}

func (h *SetMonthlyValueHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-recurring-expense-monthly-value",
		Method:      http.MethodPut,
		Path:        "/v1/recurring-expense/{id}/monthly-value",
		Summary:     "Set monthly override",
		Description: "Sets or removes the per-month override amount. Overrides only affect future paid toggles; an already-created payment keeps its amount.",
		Tags:        []string{"Recurring Expenses"},
	}, h.handle)
}

func (h *SetMonthlyValueHandler) handle(ctx context.Context, input *SetMonthlyValueInput) (*SetMonthlyValueOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	var value *decimal.Decimal
	if input.Body.Value != nil {
		parsed, parseErr := decimal.NewFromString(*input.Body.Value)
		if parseErr != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid value", parseErr)
		}
		value = &parsed
	}

	if err := h.RecurringService.SetMonthlyValue(ctx, ownerID, id, input.Body.Month, value); err != nil {
		return nil, httperr.FromService(err, "failed to set monthly value")
	}

	return &SetMonthlyValueOutput{Status: http.StatusNoContent}, nil
}
