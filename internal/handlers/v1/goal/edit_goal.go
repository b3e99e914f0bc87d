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

// EditGoalBody carries the editable goal fields. Absent fields are left
// untouched; currentAmount allows manual adjustment of the running total.
type EditGoalBody struct {
	Name           *string `json:"name,omitempty" doc:"Name"`
	TargetAmount   *string `json:"targetAmount,omitempty" doc:"Target decimal amount"`
	CurrentAmount  *string `json:"currentAmount,omitempty" doc:"Accumulated decimal amount, for manual corrections"`
	TargetDate     *string `json:"targetDate,omitempty" format:"date-time" doc:"RFC3339 target date"`
	SavingLocation *string `json:"savingLocation,omitempty" doc:"Where the savings are held"`
}

// EditGoalInput is the Huma input for editing a goal.
type EditGoalInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Goal UUID"`
	Body    EditGoalBody
}

// EditGoalOutput is the Huma output for editing a goal.
type EditGoalOutput struct {
	Status int
}

type goalEditor interface {
	EditGoal(ctx context.Context, ownerID, id uuid.UUID, update *goal.GoalUpdate) error
}

// EditGoalHandler handles PATCH /v1/goal/{id}.
type EditGoalHandler struct {
	GoalService goalEditor
}

func NewEditGoalHandler(svc goalEditor) *EditGoalHandler {
	return &EditGoalHandler{GoalService: svc}
}

func (h *EditGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "edit-goal",
		Method:      http.MethodPatch,
		Path:        "/v1/goal/{id}",
		Summary:     "Edit goal",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func parseEditGoalBody(body *EditGoalBody) (*goal.GoalUpdate, error) {
	update := &goal.GoalUpdate{
		Name:           body.Name,
		SavingLocation: body.SavingLocation,
	}

	if body.TargetAmount != nil {
		amount, err := decimal.NewFromString(*body.TargetAmount)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid targetAmount", err)
		}
		update.TargetAmount = &amount
	}
	if body.CurrentAmount != nil {
		amount, err := decimal.NewFromString(*body.CurrentAmount)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid currentAmount", err)
		}
		update.CurrentAmount = &amount
	}
	if body.TargetDate != nil {
		date, err := time.Parse(time.RFC3339, *body.TargetDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid targetDate", err)
		}
		update.TargetDate = &date
	}

	return update, nil
}

func (h *EditGoalHandler) handle(ctx context.Context, input *EditGoalInput) (*EditGoalOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	update, err := parseEditGoalBody(&input.Body)
	if err != nil {
		return nil, err
	}

	if err := h.GoalService.EditGoal(ctx, ownerID, id, update); err != nil {
		return nil, httperr.FromService(err, "failed to edit goal")
	}

	return &EditGoalOutput{Status: http.StatusNoContent}, nil
}
