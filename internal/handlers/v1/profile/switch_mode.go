package profile

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/pin"
)

// SwitchModeBody is the request body for validating a mode switch.
type SwitchModeBody struct {
	Pin string `json:"pin" required:"true" doc:"PIN to validate"`
}

// SwitchModeInput is the Huma input for validating a mode switch.
type SwitchModeInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    SwitchModeBody
}

// SwitchModeResponse is the response body for validating a mode switch.
type SwitchModeResponse struct {
	Allowed bool `json:"allowed" doc:"Whether the PIN was accepted"`
}

// SwitchModeOutput is the Huma output for validating a mode switch.
type SwitchModeOutput struct {
	Body SwitchModeResponse
}

// SwitchModeHandler handles POST /v1/profile/switch-mode. Mode itself lives on
// the client; the server only answers whether the PIN is valid.
type SwitchModeHandler struct {
	Validator pin.Validator
}

func NewSwitchModeHandler(validator pin.Validator) *SwitchModeHandler {
	return &SwitchModeHandler{Validator: validator}
}

func (h *SwitchModeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "switch-profile-mode",
		Method:      http.MethodPost,
		Path:        "/v1/profile/switch-mode",
		Summary:     "Validate mode-switch PIN",
		Tags:        []string{"Profile"},
	}, h.handle)
}

func (h *SwitchModeHandler) handle(ctx context.Context, input *SwitchModeInput) (*SwitchModeOutput, error) {
	valid, err := h.Validator.Check(ctx, input.Body.Pin, pin.ActionValidate)
	if err != nil {
		return nil, huma.NewError(http.StatusBadGateway, "pin validator unavailable", err)
	}

	return &SwitchModeOutput{Body: SwitchModeResponse{Allowed: valid}}, nil
}
