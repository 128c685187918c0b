// Package mcp provides an MCP (Model Context Protocol) server adapter for placepick.
// It lets AI assistants look up places and read or produce stored place values.
package mcp

import "errors"

var (
	// ErrMissingLookupService is returned when the lookup service is not provided.
	ErrMissingLookupService = errors.New("mcp: lookup service is required")

	// ErrMissingSelectionService is returned when the selection service is not provided.
	ErrMissingSelectionService = errors.New("mcp: selection service is required")
)
