package domain

const unknownDescription = "Unknown"

// QueryType selects how the provider matches query text.
type QueryType string

// Query types understood by the GeoNames search endpoint.
const (
	// QueryTypeNameStartsWith matches place names starting with the query.
	QueryTypeNameStartsWith QueryType = "name_startsWith"

	// QueryTypeName matches place names.
	QueryTypeName QueryType = "name"

	// QueryTypeNameEquals matches place names exactly.
	QueryTypeNameEquals QueryType = "name_equals"

	// QueryTypeFullText searches over all attributes of a place.
	QueryTypeFullText QueryType = "q"
)

// IsValid returns true if the query type is recognised.
func (t QueryType) IsValid() bool {
	switch t {
	case QueryTypeNameStartsWith, QueryTypeName, QueryTypeNameEquals, QueryTypeFullText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t QueryType) String() string {
	return string(t)
}

// Description returns a human-readable description of the query type.
func (t QueryType) Description() string {
	switch t {
	case QueryTypeNameStartsWith:
		return "Name starts with (incremental)"
	case QueryTypeName:
		return "Name"
	case QueryTypeNameEquals:
		return "Exact name"
	case QueryTypeFullText:
		return "Full text"
	default:
		return unknownDescription
	}
}

// AllQueryTypes returns all available query types.
func AllQueryTypes() []QueryType {
	return []QueryType{
		QueryTypeNameStartsWith,
		QueryTypeName,
		QueryTypeNameEquals,
		QueryTypeFullText,
	}
}

// Defaults for picker and provider settings.
const (
	DefaultDebounceMs             = 300
	DefaultGeoNamesBaseURL        = "http://api.geonames.org/search"
	DefaultGeoNamesRatePerSecond  = 2
	DefaultGeoNamesBurst          = 4
	DefaultGeoNamesTimeoutSeconds = 10
	DefaultGeoNamesMaxRetries     = 2
)

// PickerSettings controls the search-and-select behaviour.
// For feature classes and codes see https://www.geonames.org/export/codes.html.
type PickerSettings struct {
	// MinimumSearchLength is the shortest query sent to the provider.
	MinimumSearchLength int `validate:"min=1,max=64"`

	// DebounceMs is the quiet period before a query is dispatched.
	DebounceMs int `validate:"min=0,max=5000"`

	// QueryType selects how the provider matches the query text.
	QueryType QueryType `validate:"required,oneof=name_startsWith name name_equals q"`

	// FeatureClasses are appended as one featureClass parameter each.
	FeatureClasses []string `validate:"dive,oneof=A H L P R S T U V"`

	// FeatureCodes are appended as one featureCode parameter each.
	FeatureCodes []string `validate:"dive,required,alphanum,max=10"`
}

// Filters returns the provider filters described by these settings.
func (p PickerSettings) Filters() SearchFilters {
	return SearchFilters{
		QueryType:      p.QueryType,
		FeatureClasses: append([]string(nil), p.FeatureClasses...),
		FeatureCodes:   append([]string(nil), p.FeatureCodes...),
	}
}

// GeoNamesSettings configures the GeoNames provider.
type GeoNamesSettings struct {
	// Username is the GeoNames account the requests are billed to.
	Username string

	// BaseURL is the search endpoint.
	BaseURL string `validate:"required,url"`

	// RequestsPerSecond is the sustained request rate towards the provider.
	RequestsPerSecond int `validate:"min=1,max=100"`

	// Burst is the number of requests allowed above the sustained rate.
	Burst int `validate:"min=1,max=100"`

	// TimeoutSeconds bounds a single HTTP attempt.
	TimeoutSeconds int `validate:"min=1,max=120"`

	// MaxRetries is the number of retries after a failed attempt.
	MaxRetries int `validate:"min=0,max=10"`
}

// IsConfigured returns true if an account is set.
func (g GeoNamesSettings) IsConfigured() bool {
	return g.Username != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Picker holds search-and-select settings.
	Picker PickerSettings

	// GeoNames holds provider settings.
	GeoNames GeoNamesSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The GeoNames username is left empty; it has to be configured explicitly.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Picker: PickerSettings{
			MinimumSearchLength: DefaultMinimumSearchLength,
			DebounceMs:          DefaultDebounceMs,
			QueryType:           QueryTypeNameStartsWith,
		},
		GeoNames: GeoNamesSettings{
			BaseURL:           DefaultGeoNamesBaseURL,
			RequestsPerSecond: DefaultGeoNamesRatePerSecond,
			Burst:             DefaultGeoNamesBurst,
			TimeoutSeconds:    DefaultGeoNamesTimeoutSeconds,
			MaxRetries:        DefaultGeoNamesMaxRetries,
		},
	}
}
