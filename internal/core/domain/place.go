package domain

import "strconv"

// GeoRecord is a single place record as returned by the geocoding provider.
// Only the fields placepick relies on are kept; everything else in the
// provider payload is ignored at the transport boundary.
type GeoRecord struct {
	// GeonameID is the provider identifier.
	GeonameID int64

	// Name is the place name.
	Name string

	// AdminName1 is the first-level administrative subdivision
	// (US state, Spanish autonomous community, ...).
	AdminName1 string

	// CountryName is the country display name.
	CountryName string

	// Lat is the latitude in decimal degrees, as sent by the provider.
	Lat string

	// Lng is the longitude in decimal degrees, as sent by the provider.
	Lng string
}

// Identity is the triple that decides whether two places are the same.
type Identity struct {
	Name        string
	AdminName   string
	CountryName string
}

// Identity returns the identity triple of the record.
func (r GeoRecord) Identity() Identity {
	return Identity{
		Name:        r.Name,
		AdminName:   r.AdminName1,
		CountryName: r.CountryName,
	}
}

// Candidate is one deduplicated place offered for selection.
type Candidate struct {
	// ID is the provider identifier. It keys list entries and is never persisted.
	ID string

	// Name is the place name.
	Name string

	// AdminName is the administrative subdivision.
	AdminName string

	// CountryName is the country display name.
	CountryName string

	// Latitude in decimal degrees, passed through at provider precision.
	Latitude string

	// Longitude in decimal degrees, passed through at provider precision.
	Longitude string
}

// NewCandidate builds a candidate from a provider record.
func NewCandidate(r GeoRecord) Candidate {
	return Candidate{
		ID:          strconv.FormatInt(r.GeonameID, 10),
		Name:        r.Name,
		AdminName:   r.AdminName1,
		CountryName: r.CountryName,
		Latitude:    r.Lat,
		Longitude:   r.Lng,
	}
}

// Identity returns the identity triple of the candidate.
func (c Candidate) Identity() Identity {
	return Identity{
		Name:        c.Name,
		AdminName:   c.AdminName,
		CountryName: c.CountryName,
	}
}

// Label formats the candidate for human reading:
// "{name}, {adminName} ({countryName})".
// Missing parts are left out instead of leaving dangling separators.
func (c Candidate) Label() string {
	label := c.Name
	if c.AdminName != "" {
		label += ", " + c.AdminName
	}
	if c.CountryName != "" {
		label += " (" + c.CountryName + ")"
	}
	return label
}
