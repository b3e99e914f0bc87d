package profile

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/pin"
)

// SetPinBody is the request body for registering a business-mode PIN.
type SetPinBody struct {
	Pin string `json:"pin" required:"true" minLength:"4" doc:"PIN to register with the validator"`
}

// SetPinInput is the Huma input for registering a business-mode PIN.
type SetPinInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    SetPinBody
}

// SetPinOutput is the Huma output for registering a business-mode PIN.
type SetPinOutput struct {
	Status int
}

// SetPinHandler handles POST /v1/profile/pin. The PIN itself is stored by the
// external validator; this server never persists it.
type SetPinHandler struct {
	Validator pin.Validator
}

func NewSetPinHandler(validator pin.Validator) *SetPinHandler {
	return &SetPinHandler{Validator: validator}
}

func (h *SetPinHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-profile-pin",
		Method:      http.MethodPost,
		Path:        "/v1/profile/pin",
		Summary:     "Register mode-switch PIN",
		Description: "Registers the PIN that gates switching into business mode. The PIN is held by the external validator.",
		Tags:        []string{"Profile"},
	}, h.handle)
}

func (h *SetPinHandler) handle(ctx context.Context, input *SetPinInput) (*SetPinOutput, error) {
	accepted, err := h.Validator.Check(ctx, input.Body.Pin, pin.ActionCreate)
	if err != nil {
		return nil, huma.NewError(http.StatusBadGateway, "pin validator unavailable", err)
	}
	if !accepted {
		return nil, huma.NewError(http.StatusUnprocessableEntity, "pin rejected by validator")
	}

	return &SetPinOutput{Status: http.StatusNoContent}, nil
}
