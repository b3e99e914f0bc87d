package service

import "errors"

// Validation errors surfaced to the user before any store mutation happens.
// Handlers map these to 4xx responses; anything else is a store failure.
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidMonth        = errors.New("month must be formatted as YYYY-MM")
	ErrAmountNotSet        = errors.New("cannot mark as paid without a defined amount")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidCategoryName = errors.New("category name must not be empty")
	ErrDuplicateCategory   = errors.New("category already exists for this type")
	ErrCategoryInUse       = errors.New("category is referenced by transactions or recurring expenses")
)
