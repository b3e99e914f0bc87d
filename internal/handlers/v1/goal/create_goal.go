package goal

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/storage/goal"
)

// CreateGoalBody is the request body for creating a goal.
type CreateGoalBody struct {
	Name           string `json:"name" required:"true" doc:"Name"`
	TargetAmount   string `json:"targetAmount" required:"true" doc:"Target decimal amount"`
	TargetDate     string `json:"targetDate" required:"true" format:"date-time" doc:"RFC3339 target date"`
	SavingLocation string `json:"savingLocation" doc:"Where the savings are held"`
}

// CreateGoalInput is the Huma input for creating a goal.
type CreateGoalInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    CreateGoalBody
}

// CreateGoalResponse is the response body for creating a goal.
type CreateGoalResponse struct {
	ID string `json:"id" doc:"Created goal UUID"`
}

// CreateGoalOutput is the Huma output for creating a goal.
type CreateGoalOutput struct {
	Status int
	Body   CreateGoalResponse
}

type goalCreator interface {
	CreateGoal(ctx context.Context, create *goal.GoalCreate) (uuid.UUID, error)
}

// CreateGoalHandler handles POST /v1/goal.
type CreateGoalHandler struct {
	GoalService goalCreator
}

func NewCreateGoalHandler(svc goalCreator) *CreateGoalHandler {
	return &CreateGoalHandler{GoalService: svc}
}

func (h *CreateGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-goal",
		Method:      http.MethodPost,
		Path:        "/v1/goal",
		Summary:     "Create goal",
		Description: "Creates a savings goal with a zero accumulated amount.",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func (h *CreateGoalHandler) handle(ctx context.Context, input *CreateGoalInput) (*CreateGoalOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	targetAmount, err := decimal.NewFromString(input.Body.TargetAmount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid targetAmount", err)
	}
	targetDate, err := time.Parse(time.RFC3339, input.Body.TargetDate)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid targetDate", err)
	}

	id, err := h.GoalService.CreateGoal(ctx, &goal.GoalCreate{
		OwnerID:        ownerID,
		Name:           input.Body.Name,
		TargetAmount:   targetAmount,
		TargetDate:     targetDate,
		SavingLocation: input.Body.SavingLocation,
	})
	if err != nil {
		return nil, httperr.FromService(err, "failed to create goal")
	}

	return &CreateGoalOutput{
		Status: http.StatusCreated,
		Body:   CreateGoalResponse{ID: id.String()},
	}, nil
}
