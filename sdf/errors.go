package sdf

import "errors"

// Sentinel errors for sdf package.
var (
	// ErrEmptySource is returned when the coverage bitmap has no pixels.
	ErrEmptySource = errors.New("sdf: empty source bitmap")

	// ErrInvalidOutput is returned for a non-positive output size.
	ErrInvalidOutput = errors.New("sdf: output size must be positive")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "sdf: invalid config." + e.Field + ": " + e.Reason
}
