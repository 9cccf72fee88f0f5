package domain

import "errors"

var (
	ErrConcreteClassNotFound = errors.New("concrete class not found")
	ErrInvalidBuildingInput  = errors.New("invalid building input")
	ErrInvalidBeamInput      = errors.New("invalid beam input")
)
