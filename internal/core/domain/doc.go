// Package domain defines the core business entities for placepick.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Query: Normalised user input and its search eligibility
//   - GeoRecord: A raw place record as returned by the geocoding provider
//   - Candidate: A deduplicated place offered to the user
//   - Selection: The persisted pick (display name and coordinates)
//   - Snapshot: The observable state of the picker
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
