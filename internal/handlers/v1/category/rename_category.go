package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/logging"
)

// RenameCategoryBody is the request body for renaming a custom category.
type RenameCategoryBody struct {
	Name string `json:"name" required:"true" doc:"New name, with or without the custom prefix"`
}

// RenameCategoryInput is the Huma input for renaming a custom category.
type RenameCategoryInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Category UUID"`
	Body    RenameCategoryBody
}

// RenameCategoryOutput is the Huma output for renaming a custom category.
type RenameCategoryOutput struct {
	Status int
}

type categoryRenamer interface {
	RenameCategory(ctx context.Context, ownerID, id uuid.UUID, newName string) error
}

// RenameCategoryHandler handles PUT /v1/category/{id}/name. The rename
// cascades through the registry row, the transactions, and the recurring
// expense templates as separate statements.
type RenameCategoryHandler struct {
	CategoryService categoryRenamer
}

func NewRenameCategoryHandler(svc categoryRenamer) *RenameCategoryHandler {
	return &RenameCategoryHandler{CategoryService: svc}
}

func (h *RenameCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "rename-category",
		Method:      http.MethodPut,
		Path:        "/v1/category/{id}/name",
		Summary:     "Rename custom category",
		Description: "Renames a category and cascades the new name through transactions and recurring expense templates.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *RenameCategoryHandler) handle(ctx context.Context, input *RenameCategoryInput) (*RenameCategoryOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("renameCategoryMs")
	}
	err = h.CategoryService.RenameCategory(ctx, ownerID, id, input.Body.Name)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromService(err, "failed to rename category")
	}

	return &RenameCategoryOutput{Status: http.StatusNoContent}, nil
}
