package investment

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/storage/investment"
)

// CreateInvestmentBody is the request body for creating an investment.
type CreateInvestmentBody struct {
	Name             string `json:"name" required:"true" doc:"Name"`
	Type             string `json:"type" doc:"Asset type"`
	Value            string `json:"value" required:"true" doc:"Total decimal value"`
	Installments     int    `json:"installments" required:"true" minimum:"1" doc:"Total number of installments"`
	InstallmentValue string `json:"installmentValue" doc:"Decimal value per installment"`
	StartDate        string `json:"startDate" format:"date-time" doc:"RFC3339 start date, defaults to now"`
	Description      string `json:"description" doc:"Description"`
}

// CreateInvestmentInput is the Huma input for creating an investment.
type CreateInvestmentInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    CreateInvestmentBody
}

// CreateInvestmentResponse is the response body for creating an investment.
type CreateInvestmentResponse struct {
	ID string `json:"id" doc:"Created investment UUID"`
}

// CreateInvestmentOutput is the Huma output for creating an investment.
type CreateInvestmentOutput struct {
	Status int
	Body   CreateInvestmentResponse
}

type investmentCreator interface {
	CreateInvestment(ctx context.Context, create *investment.InvestmentCreate) (uuid.UUID, error)
}

// CreateInvestmentHandler handles POST /v1/investment.
type CreateInvestmentHandler struct {
	InvestmentService investmentCreator
}

func NewCreateInvestmentHandler(svc investmentCreator) *CreateInvestmentHandler {
	return &CreateInvestmentHandler{InvestmentService: svc}
}

func (h *CreateInvestmentHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-investment",
		Method:      http.MethodPost,
		Path:        "/v1/investment",
		Summary:     "Create investment",
		Tags:        []string{"Investments"},
	}, h.handle)
}

func parseCreateInvestmentInput(input *CreateInvestmentInput) (*investment.InvestmentCreate, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	value, err := decimal.NewFromString(input.Body.Value)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid value", err)
	}

	installmentValue := decimal.Zero
	if input.Body.InstallmentValue != "" {
		installmentValue, err = decimal.NewFromString(input.Body.InstallmentValue)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid installmentValue", err)
		}
	}

	startDate := time.Now()
	if input.Body.StartDate != "" {
		startDate, err = time.Parse(time.RFC3339, input.Body.StartDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
		}
	}

	return &investment.InvestmentCreate{
		OwnerID:          ownerID,
		Name:             input.Body.Name,
		Type:             input.Body.Type,
		Value:            value,
		Installments:     input.Body.Installments,
		InstallmentValue: installmentValue,
		StartDate:        startDate,
		Description:      input.Body.Description,
	}, nil
}

func (h *CreateInvestmentHandler) handle(ctx context.Context, input *CreateInvestmentInput) (*CreateInvestmentOutput, error) {
	create, err := parseCreateInvestmentInput(input)
	if err != nil {
		return nil, err
	}

	id, err := h.InvestmentService.CreateInvestment(ctx, create)
	if err != nil {
		return nil, httperr.FromService(err, "failed to create investment")
	}

	return &CreateInvestmentOutput{
		Status: http.StatusCreated,
		Body:   CreateInvestmentResponse{ID: id.String()},
	}, nil
}
