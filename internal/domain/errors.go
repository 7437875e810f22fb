package domain

import "errors"

// Error kinds shared by every launcher component. Callers match them with
// errors.Is; the wrapped message carries the detail.
var (
	// ErrInvalidConfig marks a local settings validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrIO marks a filesystem failure.
	ErrIO = errors.New("filesystem error")

	// ErrCommandFailed marks an external process that exited non-zero or
	// could not be started.
	ErrCommandFailed = errors.New("command failed")

	// ErrNetworkUnavailable is returned when every fetch strategy failed.
	ErrNetworkUnavailable = errors.New("network unavailable")
)
