// Package pin wraps the external PIN validator that gates business/personal
// mode switches. Hashing and storage of the PIN live on the validator side;
// this client only carries the request/response shape.
package pin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	ActionCreate   = "create"
	ActionValidate = "validate"
)

// Validator is the boundary to the server-side PIN check.
type Validator interface {
	// Check submits a PIN with an action ("create" or "validate") and reports
	// whether the validator accepted it.
	Check(ctx context.Context, ownerPin string, action string) (bool, error)
}

type request struct {
	Pin    string `json:"pin"`
	Action string `json:"action"`
}

type response struct {
	Valid bool `json:"valid"`
}

// HTTPValidator calls the validator endpoint over HTTP.
type HTTPValidator struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPValidator(endpoint string) *HTTPValidator {
	return &HTTPValidator{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *HTTPValidator) Check(ctx context.Context, ownerPin string, action string) (bool, error) {
	body, err := json.Marshal(request{Pin: ownerPin, Action: action})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.Endpoint, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("pin validator returned status %d", resp.StatusCode)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, err
	}
	return parsed.Valid, nil
}
