package booking

import "errors"

var (
	// ErrInvalidInterval flags a proposed interval whose end is not
	// after its start. This is a caller bug, never retried.
	ErrInvalidInterval = errors.New("proposed end must be after start")

	// ErrMissingProfessional indicates the proposal named no professional.
	ErrMissingProfessional = errors.New("professional_id is required")
)
