package goal

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/storage/goal"
)

// ListGoalsInput is the Huma input for listing goals.
type ListGoalsInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
}

// ListGoalsResponseBody is the response body for listing goals.
type ListGoalsResponseBody struct {
	Goals []Goal `json:"goals" doc:"The owner's goals"`
}

// ListGoalsOutput is the Huma output for listing goals.
type ListGoalsOutput struct {
	Body ListGoalsResponseBody
}

type goalLister interface {
	ListGoals(ctx context.Context, ownerID uuid.UUID) ([]*goal.Goal, error)
}

// ListGoalsHandler handles GET /v1/goal.
type ListGoalsHandler struct {
	GoalService goalLister
}

func NewListGoalsHandler(svc goalLister) *ListGoalsHandler {
	return &ListGoalsHandler{GoalService: svc}
}

func (h *ListGoalsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-goals",
		Method:      http.MethodGet,
		Path:        "/v1/goal",
		Summary:     "List goals",
		Tags:        []string{"Goals"},
	}, h.handle)
}

func (h *ListGoalsHandler) handle(ctx context.Context, input *ListGoalsInput) (*ListGoalsOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}

	goals, err := h.GoalService.ListGoals(ctx, ownerID)
	if err != nil {
		return nil, httperr.FromService(err, "failed to list goals")
	}

	resp := ListGoalsResponseBody{Goals: make([]Goal, len(goals))}
	for i, g := range goals {
		resp.Goals[i] = fromStorage(g)
	}

	return &ListGoalsOutput{Body: resp}, nil
}
