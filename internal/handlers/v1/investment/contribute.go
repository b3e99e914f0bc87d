package investment

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
)

// ContributeBody is the request body for contributing to an investment.
type ContributeBody struct {
	Amount        string `json:"amount" required:"true" doc:"Positive decimal amount"`
	PaymentMethod string `json:"paymentMethod" doc:"Payment method"`
}

// ContributeInput is the Huma input for contributing to an investment.
type ContributeInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Investment UUID"`
	Body    ContributeBody
}

// ContributeOutput is the Huma output for contributing to an investment.
type ContributeOutput struct {
	Status int
}

type investmentContributor interface {
	Contribute(ctx context.Context, ownerID, investmentID uuid.UUID, amount decimal.Decimal, paymentMethod string) error
}

// ContributeHandler handles POST /v1/investment/{id}/contribute. The
// contribution is recorded in the ledger only; the paid-installments counter
// is untouched.
type ContributeHandler struct {
	InvestmentService investmentContributor
}

func NewContributeHandler(svc investmentContributor) *ContributeHandler {
	return &ContributeHandler{InvestmentService: svc}
}

func (h *ContributeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "contribute-to-investment",
		Method:      http.MethodPost,
		Path:        "/v1/investment/{id}/contribute",
		Summary:     "Contribute to investment",
		Description: "Records a flagged expense transaction for the investment. The paid-installments counter is not affected.",
		Tags:        []string{"Investments"},
	}, h.handle)
}

func (h *ContributeHandler) handle(ctx context.Context, input *ContributeInput) (*ContributeOutput, error) {
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

	if err := h.InvestmentService.Contribute(ctx, ownerID, id, amount, input.Body.PaymentMethod); err != nil {
		return nil, httperr.FromService(err, "failed to record contribution")
	}

	return &ContributeOutput{Status: http.StatusNoContent}, nil
}
