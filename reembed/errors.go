package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts reports a retry budget that allows no attempts.
	ErrInvalidMaxAttempts = errors.New("retry budget must allow at least one attempt")
)
