package availability

import "errors"

var (
	// ErrMissingProfessional indicates the request named no professional.
	ErrMissingProfessional = errors.New("professional_id is required")

	// ErrMissingDate indicates the request named no target date.
	ErrMissingDate = errors.New("date is required")

	// ErrBadTimezone indicates an unknown IANA timezone name.
	ErrBadTimezone = errors.New("unknown timezone")
)
