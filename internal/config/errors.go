package config

import "errors"

// Sentinel kinds for configuration failures. Load distinguishes a
// source that could not be read or decoded from a decoded config the
// service cannot run with.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
