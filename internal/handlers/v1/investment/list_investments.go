package investment

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/storage/investment"
)

// ListInvestmentsInput is the Huma input for listing investments.
type ListInvestmentsInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
}

// ListInvestmentsResponseBody is the response body for listing investments.
type ListInvestmentsResponseBody struct {
	Investments []Investment `json:"investments" doc:"The owner's investments"`
}

// ListInvestmentsOutput is the Huma output for listing investments.
type ListInvestmentsOutput struct {
	Body ListInvestmentsResponseBody
}

type investmentLister interface {
	ListInvestments(ctx context.Context, ownerID uuid.UUID) ([]*investment.Investment, error)
}

// ListInvestmentsHandler handles GET /v1/investment.
type ListInvestmentsHandler struct {
	InvestmentService investmentLister
}

func NewListInvestmentsHandler(svc investmentLister) *ListInvestmentsHandler {
	return &ListInvestmentsHandler{InvestmentService: svc}
}

func (h *ListInvestmentsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-investments",
		Method:      http.MethodGet,
		Path:        "/v1/investment",
		Summary:     "List investments",
		Tags:        []string{"Investments"},
	}, h.handle)
}

func (h *ListInvestmentsHandler) handle(ctx context.Context, input *ListInvestmentsInput) (*ListInvestmentsOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}

	investments, err := h.InvestmentService.ListInvestments(ctx, ownerID)
	if err != nil {
		return nil, httperr.FromService(err, "failed to list investments")
	}

	resp := ListInvestmentsResponseBody{Investments: make([]Investment, len(investments))}
	for i, inv := range investments {
		resp.Investments[i] = fromStorage(inv)
	}

	return &ListInvestmentsOutput{Body: resp}, nil
}
