// Package tui provides an interactive terminal user interface for placepick.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/placepick/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Picker owns the search-and-select state the TUI renders.
	Picker driving.PickerService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(picker driving.PickerService) *Ports {
	return &Ports{
		Picker: picker,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Picker == nil {
		return ErrMissingPickerService
	}
	return nil
}
