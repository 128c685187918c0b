package driving

import "github.com/custodia-labs/placepick/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// SetUsername sets the GeoNames account.
	SetUsername(username string) error

	// SetMinimumSearchLength sets the shortest query sent to the provider.
	SetMinimumSearchLength(length int) error

	// SetDebounce sets the quiet period in milliseconds.
	SetDebounce(ms int) error

	// SetFeatures sets the feature class and code filters.
	SetFeatures(classes, codes []string) error

	// SetQueryType sets how the provider matches query text.
	SetQueryType(queryType domain.QueryType) error

	// Validate checks settings for out-of-range values.
	Validate(settings *domain.AppSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
