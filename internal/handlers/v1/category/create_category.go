package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-server/internal/storage/ledger"
)

// CreateCategoryBody is the request body for creating a custom category.
type CreateCategoryBody struct {
	Name string `json:"name" required:"true" doc:"Category name, with or without the custom prefix"`
	Type int    `json:"type" minimum:"0" maximum:"1" doc:"Transaction type: 0=Income, 1=Expense"`
}

// CreateCategoryInput is the Huma input for creating a custom category.
type CreateCategoryInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    CreateCategoryBody
}

// CreateCategoryResponse is the response body for creating a custom category.
type CreateCategoryResponse struct {
	ID string `json:"id" doc:"Created category UUID"`
}

// CreateCategoryOutput is the Huma output for creating a custom category.
type CreateCategoryOutput struct {
	Status int
	Body   CreateCategoryResponse
}

type categoryAdder interface {
	AddCategory(ctx context.Context, ownerID uuid.UUID, categoryType ledger.TransactionType, name string) (uuid.UUID, error)
}

// CreateCategoryHandler handles POST /v1/category.
type CreateCategoryHandler struct {
	CategoryService categoryAdder
}

func NewCreateCategoryHandler(svc categoryAdder) *CreateCategoryHandler {
	return &CreateCategoryHandler{CategoryService: svc}
}

func (h *CreateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/v1/category",
		Summary:     "Create custom category",
		Description: "Registers a custom category. Names are unique case-insensitively within (owner, type).",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *CreateCategoryHandler) handle(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	ownerID, err := uuid.FromString(input.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}

	id, err := h.CategoryService.AddCategory(ctx, ownerID, ledger.TransactionType(input.Body.Type), input.Body.Name)
	if err != nil {
		return nil, httperr.FromService(err, "failed to create category")
	}

	return &CreateCategoryOutput{
		Status: http.StatusCreated,
		Body:   CreateCategoryResponse{ID: id.String()},
	}, nil
}
