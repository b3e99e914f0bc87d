package investment

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
)

// SetInstallmentsBody is the request body for setting the paid-installments counter.
type SetInstallmentsBody struct {
	PaidInstallments int `json:"paidInstallments" minimum:"0" doc:"Number of installments paid, clamped to the investment's total"`
}

// SetInstallmentsInput is the Huma input for setting the paid-installments counter.
type SetInstallmentsInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Investment UUID"`
	Body    SetInstallmentsBody
}

// SetInstallmentsOutput is the Huma output for setting the paid-installments counter.
type SetInstallmentsOutput struct {
	Status int
}

type installmentsSetter interface {
	SetPaidInstallments(ctx context.Context, ownerID, id uuid.UUID, paidInstallments int) error
}

// SetInstallmentsHandler handles PUT /v1/investment/{id}/installments. The
// counter moves independently of the ledger; no transaction is created.
type SetInstallmentsHandler struct {
	InvestmentService installmentsSetter
}

func NewSetInstallmentsHandler(svc installmentsSetter) *SetInstallmentsHandler {
	return &SetInstallmentsHandler{InvestmentService: svc}
}

func (h *SetInstallmentsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-investment-installments",
		Method:      http.MethodPut,
		Path:        "/v1/investment/{id}/installments",
		Summary:     "Set paid installments",
		Description: "Sets the paid-installments counter directly, clamped to [0, installments]. No transaction side effect.",
		Tags:        []string{"Investments"},
	}, h.handle)
}

func (h *SetInstallmentsHandler) handle(ctx context.Context, input *SetInstallmentsInput) (*SetInstallmentsOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	if err := h.InvestmentService.SetPaidInstallments(ctx, ownerID, id, input.Body.PaidInstallments); err != nil {
		return nil, httperr.FromService(err, "failed to set paid installments")
	}

	return &SetInstallmentsOutput{Status: http.StatusNoContent}, nil
}
