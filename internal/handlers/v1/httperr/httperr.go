// Package httperr maps service errors onto huma responses so every handler
// reports validation failures the same way.
package httperr

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/service"
)

// FromService converts a service error into a huma error. Validation errors
// become 4xx with the sentinel's message; anything else is a generic 500 so
// store details never leak. Partial-success detail is deliberately absent
// from the message; completed steps are visible in the logs only.
func FromService(err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidMonth),
		errors.Is(err, service.ErrAmountNotSet),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidCategoryName):
		return huma.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrDuplicateCategory),
		errors.Is(err, service.ErrCategoryInUse):
		return huma.NewError(http.StatusConflict, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, fallback, err)
	}
}
