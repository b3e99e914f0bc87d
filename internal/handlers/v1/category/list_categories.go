package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
)

// ListCategoriesInput is the Huma input for listing custom categories.
type ListCategoriesInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Type    int    `query:"type" minimum:"0" maximum:"1" doc:"Transaction type: 0=Income, 1=Expense"`
}

// ListCategoriesResponseBody is the response body for listing custom categories.
type ListCategoriesResponseBody struct {
	Categories []Category `json:"categories" doc:"The owner's custom categories of the given type"`
}

// ListCategoriesOutput is the Huma output for listing custom categories.
type ListCategoriesOutput struct {
	Body ListCategoriesResponseBody
}

type categoryLister interface {
	ListCategories(ctx context.Context, ownerID uuid.UUID, categoryType ledger.TransactionType) ([]*category.Category, error)
}

// ListCategoriesHandler handles GET /v1/category.
type ListCategoriesHandler struct {
	CategoryService categoryLister
}

func NewListCategoriesHandler(svc categoryLister) *ListCategoriesHandler {
	return &ListCategoriesHandler{CategoryService: svc}
}

func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/category",
		Summary:     "List custom categories",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}

	categories, err := h.CategoryService.ListCategories(ctx, ownerID, ledger.TransactionType(input.Type))
	if err != nil {
		return nil, httperr.FromService(err, "failed to list categories")
	}

	resp := ListCategoriesResponseBody{Categories: make([]Category, len(categories))}
	for i, c := range categories {
		resp.Categories[i] = fromStorage(c)
	}

	return &ListCategoriesOutput{Body: resp}, nil
}
