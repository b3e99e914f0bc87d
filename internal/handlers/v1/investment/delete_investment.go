package investment

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
)

// DeleteInvestmentInput is the Huma input for deleting an investment.
type DeleteInvestmentInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Investment UUID"`
}

// DeleteInvestmentOutput is the Huma output for deleting an investment.
type DeleteInvestmentOutput struct {
	Status int
}

type investmentDeleter interface {
	DeleteInvestment(ctx context.Context, ownerID, id uuid.UUID) error
}

// DeleteInvestmentHandler handles DELETE /v1/investment/{id}.
type DeleteInvestmentHandler struct {
	InvestmentService investmentDeleter
}

func NewDeleteInvestmentHandler(svc investmentDeleter) *DeleteInvestmentHandler {
	return &DeleteInvestmentHandler{InvestmentService: svc}
}

func (h *DeleteInvestmentHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-investment",
		Method:      http.MethodDelete,
		Path:        "/v1/investment/{id}",
		Summary:     "Delete investment",
		Tags:        []string{"Investments"},
	}, h.handle)
}

func (h *DeleteInvestmentHandler) handle(ctx context.Context, input *DeleteInvestmentInput) (*DeleteInvestmentOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	if err := h.InvestmentService.DeleteInvestment(ctx, ownerID, id); err != nil {
		return nil, httperr.FromService(err, "failed to delete investment")
	}

	return &DeleteInvestmentOutput{Status: http.StatusNoContent}, nil
}
