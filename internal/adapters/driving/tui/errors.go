package tui

import "errors"

// ErrMissingPickerService is returned when the picker service is not provided.
var ErrMissingPickerService = errors.New("tui: picker service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
