package wizard

import "errors"

var (
	// ErrUnknownField is returned when a field name does not match the
	// addressed target (top-level record or product entry).
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrProductIndexOutOfRange signals a product index outside the list.
	ErrProductIndexOutOfRange = errors.New("wizard: product index out of range")
	// ErrLastProduct is returned when removing would leave no products.
	ErrLastProduct = errors.New("wizard: at least one product is required")
	// ErrUnknownStep is returned for step ids that do not exist.
	ErrUnknownStep = errors.New("wizard: unknown step")
	// ErrNoSubmitter is returned by Submit when no collaborator is configured.
	ErrNoSubmitter = errors.New("wizard: submitter is not configured")
)
