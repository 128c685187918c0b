package mcp

import (
	"github.com/custodia-labs/placepick/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Lookup runs place searches.
	Lookup driving.LookupService

	// Selection encodes, decodes and stores picked places.
	Selection driving.SelectionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Lookup == nil {
		return ErrMissingLookupService
	}
	if p.Selection == nil {
		return ErrMissingSelectionService
	}
	return nil
}
