package planner

import "errors"

var (
	// ErrMissingProfessional indicates the batch named no professional.
	ErrMissingProfessional = errors.New("professional_id is required")

	// ErrMissingToday indicates the batch carried no anchor date.
	ErrMissingToday = errors.New("today is required")

	// ErrNoItems indicates an empty batch.
	ErrNoItems = errors.New("at least one item is required")

	// ErrItemMissingID indicates an item without an identifier.
	ErrItemMissingID = errors.New("every item needs an id")

	// ErrBadPriority indicates a priority outside 0..3.
	ErrBadPriority = errors.New("priority must be between 0 and 3")

	// ErrBadDuration indicates a negative duration estimate.
	ErrBadDuration = errors.New("estimated duration cannot be negative")

	// ErrBadTimezone indicates an unknown IANA timezone name.
	ErrBadTimezone = errors.New("unknown timezone")
)
