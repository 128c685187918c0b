package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

func TestDedupe_FirstSeenWins(t *testing.T) {
	records := []domain.GeoRecord{
		newYork(5128581, "40.71427", "-74.00597"),
		newYork(5128638, "43.00035", "-75.4999"),
	}

	candidates := Dedupe(records)

	require.Len(t, candidates, 1)
	assert.Equal(t, "5128581", candidates[0].ID)
	assert.Equal(t, "40.71427", candidates[0].Latitude)
	assert.Equal(t, "-74.00597", candidates[0].Longitude)
	assert.Equal(t, "New York, New York (United States)", candidates[0].Label())
}

func TestDedupe_KeepsProviderOrder(t *testing.T) {
	records := []domain.GeoRecord{
		{GeonameID: 1, Name: "Paris", AdminName1: "Île-de-France", CountryName: "France"},
		{GeonameID: 2, Name: "Paris", AdminName1: "Texas", CountryName: "United States"},
		{GeonameID: 3, Name: "Paris", AdminName1: "Île-de-France", CountryName: "France"},
		{GeonameID: 4, Name: "Paris", AdminName1: "Tennessee", CountryName: "United States"},
		{GeonameID: 5, Name: "Paris", AdminName1: "Texas", CountryName: "United States"},
	}

	candidates := Dedupe(records)

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"1", "2", "4"}, ids)
}

func TestDedupe_DistinctOnAnyTripleField(t *testing.T) {
	records := []domain.GeoRecord{
		{GeonameID: 1, Name: "Victoria", AdminName1: "British Columbia", CountryName: "Canada"},
		{GeonameID: 2, Name: "Victoria", AdminName1: "Texas", CountryName: "United States"},
		{GeonameID: 3, Name: "Victoria", AdminName1: "Texas", CountryName: "Canada"},
		{GeonameID: 4, Name: "Victoria Falls", AdminName1: "Texas", CountryName: "United States"},
	}

	assert.Len(t, Dedupe(records), 4)
}

func TestDedupe_Empty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
	assert.NotNil(t, Dedupe(nil))
	assert.Empty(t, Dedupe([]domain.GeoRecord{}))
}

func TestDedupe_EveryTripleAppearsOnce(t *testing.T) {
	records := []domain.GeoRecord{
		{GeonameID: 1, Name: "A", AdminName1: "X", CountryName: "C"},
		{GeonameID: 2, Name: "B", AdminName1: "X", CountryName: "C"},
		{GeonameID: 3, Name: "A", AdminName1: "X", CountryName: "C"},
		{GeonameID: 4, Name: "B", AdminName1: "X", CountryName: "C"},
		{GeonameID: 5, Name: "A", AdminName1: "Y", CountryName: "C"},
		{GeonameID: 6, Name: "A", AdminName1: "X", CountryName: "C"},
	}

	candidates := Dedupe(records)

	seen := make(map[domain.Identity]string)
	for _, c := range candidates {
		_, dup := seen[c.Identity()]
		assert.False(t, dup, "duplicate %v", c.Identity())
		seen[c.Identity()] = c.ID
	}
	assert.Equal(t, "1", seen[domain.Identity{Name: "A", AdminName: "X", CountryName: "C"}])
	assert.Equal(t, "2", seen[domain.Identity{Name: "B", AdminName: "X", CountryName: "C"}])
	assert.Equal(t, "5", seen[domain.Identity{Name: "A", AdminName: "Y", CountryName: "C"}])
}
