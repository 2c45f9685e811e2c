package models

import "errors"

// Application-wide standard errors
var (
	// ErrNotFound means no story exists with the requested id.
	ErrNotFound = errors.New("story not found")

	// ErrValidation means a create/update payload failed required-field or
	// enum-membership checks. Wrap it with the field detail:
	// fmt.Errorf("%w: missing required fields: ...", ErrValidation).
	ErrValidation = errors.New("validation error")
)
