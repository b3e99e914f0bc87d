package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
)

// DeleteCategoryInput is the Huma input for deleting a custom category.
type DeleteCategoryInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Category UUID"`
}

// DeleteCategoryOutput is the Huma output for deleting a custom category.
type DeleteCategoryOutput struct {
	Status int
}

type categoryDeleter interface {
	DeleteCategory(ctx context.Context, ownerID, id uuid.UUID) error
}

// DeleteCategoryHandler handles DELETE /v1/category/{id}. Deletion is refused
// while any transaction or recurring expense still uses the category.
type DeleteCategoryHandler struct {
	CategoryService categoryDeleter
}

func NewDeleteCategoryHandler(svc categoryDeleter) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{CategoryService: svc}
}

func (h *DeleteCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-category",
		Method:      http.MethodDelete,
		Path:        "/v1/category/{id}",
		Summary:     "Delete custom category",
		Description: "Removes a custom category unless a transaction or recurring expense still references it.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *DeleteCategoryHandler) handle(ctx context.Context, input *DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	if err := h.CategoryService.DeleteCategory(ctx, ownerID, id); err != nil {
		return nil, httperr.FromService(err, "failed to delete category")
	}

	return &DeleteCategoryOutput{Status: http.StatusNoContent}, nil
}
