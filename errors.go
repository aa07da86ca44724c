package lantern

import "errors"

var (
	// ErrInvalidArgument signals a caller supplied value of the wrong
	// fundamental kind, such as a zero snowflake where an ID is required.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidValue signals a caller supplied value of the right kind but
	// outside its allowed range, or a conflicting field combination.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNoDispatchHandler signals a gateway payload named an event type
	// with no registered handler; callers replaying mixed streams treat it
	// as skippable.
	ErrNoDispatchHandler = errors.New("no dispatch handler found")
)
