package domain

import (
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// Resource errors.
var (
	// ErrUnknownResource indicates no handle is registered for the requested name.
	ErrUnknownResource = apperrors.Wrap(apperrors.ErrNotFound, "unknown resource")

	// ErrRandomUnsupported indicates the resolved handle cannot generate random records.
	ErrRandomUnsupported = apperrors.Wrap(apperrors.ErrNotFound, "random records not supported")

	// ErrInvalidBody indicates the request body is not a JSON object.
	ErrInvalidBody = apperrors.Wrap(apperrors.ErrInvalidInput, "request body must be a JSON object")
)
