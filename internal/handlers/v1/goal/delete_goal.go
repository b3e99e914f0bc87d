package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
)

// DeleteGoalInput is the Huma input for deleting a goal.
type DeleteGoalInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Goal UUID"`
}

// DeleteGoalOutput is the Huma output for deleting a goal.
type DeleteGoalOutput struct {
	Status int
}

type goalDeleter interface {
	DeleteGoal(ctx context.Context, ownerID, id uuid.UUID) error
}

// DeleteGoalHandler handles DELETE /v1/goal/{id}. Contribution transactions
// stay in the ledger.
type DeleteGoalHandler struct {
	GoalService goalDeleter
}

func NewDeleteGoalHandler(svc goalDeleter) *DeleteGoalHandler {
	return &DeleteGoalHandler{GoalService: svc}
}

func (h *DeleteGoalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-goal",
		Method:      http.MethodDelete,
		Path:        "/v1/goal/{id}",
		Summary:     "Delete goal",
		Description: "Removes the goal. Its contribution transactions remain in the ledger.",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func (h *DeleteGoalHandler) handle(ctx context.Context, input *DeleteGoalInput) (*DeleteGoalOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	if err := h.GoalService.DeleteGoal(ctx, ownerID, id); err != nil {
		return nil, httperr.FromService(err, "failed to delete goal")
	}

	return &DeleteGoalOutput{Status: http.StatusNoContent}, nil
}
