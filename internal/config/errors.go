package config

import "errors"

// Errors returned by Load and LoadSeed. Callers match them with errors.Is.
var (
	// ErrInvalidConfig marks values that parsed but cannot run the service.
	ErrInvalidConfig = errors.New("invalid activities config")
	// ErrLoadConfig marks a config or seed file that could not be read or decoded.
	ErrLoadConfig = errors.New("cannot load activities config")
)
