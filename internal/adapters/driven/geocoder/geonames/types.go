package geonames

import (
	"encoding/json"
	"fmt"
	"strings"
)

// searchResponse is the JSON body of a search call.
// Exactly one of Geonames or Status is normally present.
type searchResponse struct {
	Geonames []geoName     `json:"geonames"`
	Status   *statusReport `json:"status"`
}

// geoName is one record in a search response.
// Fields placepick does not use are left undecoded.
type geoName struct {
	GeonameID   int64      `json:"geonameId"`
	Name        string     `json:"name"`
	AdminName1  string     `json:"adminName1"`
	CountryName string     `json:"countryName"`
	Lat         coordinate `json:"lat"`
	Lng         coordinate `json:"lng"`
}

// statusReport is how GeoNames signals account and quota errors.
// See https://www.geonames.org/export/webservice-exception.html.
type statusReport struct {
	Message string `json:"message"`
	Value   int    `json:"value"`
}

// Quota exceeded status values.
const (
	statusDailyLimit  = 18
	statusHourlyLimit = 19
	statusWeeklyLimit = 20
)

func (s statusReport) rateLimited() bool {
	switch s.Value {
	case statusDailyLimit, statusHourlyLimit, statusWeeklyLimit:
		return true
	default:
		return false
	}
}

// coordinate accepts a JSON string or number and keeps its text unchanged.
type coordinate string

// UnmarshalJSON implements json.Unmarshaler.
func (c *coordinate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("coordinate: %w", err)
		}
		*c = coordinate(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("coordinate: %w", err)
	}
	*c = coordinate(n.String())
	return nil
}
