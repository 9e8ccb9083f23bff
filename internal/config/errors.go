package config

import (
	"errors"
)

// Sentinel error kinds for config loading. Callers match with errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
