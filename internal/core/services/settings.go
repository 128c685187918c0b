package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/placepick/internal/core/domain"
	"github.com/custodia-labs/placepick/internal/core/ports/driven"
	"github.com/custodia-labs/placepick/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyMinimumSearchLength = "picker.minimum_search_length"
	keyDebounceMs          = "picker.debounce_ms"
	keyQueryType           = "picker.query_type"
	keyFeatureClasses      = "picker.feature_classes"
	keyFeatureCodes        = "picker.feature_codes"
	keyGeoNamesUsername    = "geonames.username"
	keyGeoNamesBaseURL     = "geonames.base_url"
	keyGeoNamesRate        = "geonames.requests_per_second"
	keyGeoNamesBurst       = "geonames.burst"
	keyGeoNamesTimeout     = "geonames.timeout_seconds"
	keyGeoNamesMaxRetries  = "geonames.max_retries"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Get retrieves current application settings.
// Missing or unrecognised values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Picker: domain.PickerSettings{
			MinimumSearchLength: s.getInt(keyMinimumSearchLength, defaults.Picker.MinimumSearchLength),
			DebounceMs:          s.getInt(keyDebounceMs, defaults.Picker.DebounceMs),
			QueryType:           s.getQueryType(defaults.Picker.QueryType),
			FeatureClasses:      s.configStore.GetStringSlice(keyFeatureClasses),
			FeatureCodes:        s.configStore.GetStringSlice(keyFeatureCodes),
		},
		GeoNames: domain.GeoNamesSettings{
			Username:          s.configStore.GetString(keyGeoNamesUsername),
			BaseURL:           s.getString(keyGeoNamesBaseURL, defaults.GeoNames.BaseURL),
			RequestsPerSecond: s.getInt(keyGeoNamesRate, defaults.GeoNames.RequestsPerSecond),
			Burst:             s.getInt(keyGeoNamesBurst, defaults.GeoNames.Burst),
			TimeoutSeconds:    s.getInt(keyGeoNamesTimeout, defaults.GeoNames.TimeoutSeconds),
			MaxRetries:        s.getInt(keyGeoNamesMaxRetries, defaults.GeoNames.MaxRetries),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.Validate(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyMinimumSearchLength, settings.Picker.MinimumSearchLength},
		{keyDebounceMs, settings.Picker.DebounceMs},
		{keyQueryType, settings.Picker.QueryType.String()},
		{keyFeatureClasses, nonNil(settings.Picker.FeatureClasses)},
		{keyFeatureCodes, nonNil(settings.Picker.FeatureCodes)},
		{keyGeoNamesUsername, settings.GeoNames.Username},
		{keyGeoNamesBaseURL, settings.GeoNames.BaseURL},
		{keyGeoNamesRate, settings.GeoNames.RequestsPerSecond},
		{keyGeoNamesBurst, settings.GeoNames.Burst},
		{keyGeoNamesTimeout, settings.GeoNames.TimeoutSeconds},
		{keyGeoNamesMaxRetries, settings.GeoNames.MaxRetries},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// SetUsername sets the GeoNames account.
func (s *SettingsService) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username cannot be empty", domain.ErrInvalidInput)
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.GeoNames.Username = username
	})
}

// SetMinimumSearchLength sets the shortest query sent to the provider.
func (s *SettingsService) SetMinimumSearchLength(length int) error {
	return s.update(func(settings *domain.AppSettings) {
		settings.Picker.MinimumSearchLength = length
	})
}

// SetDebounce sets the quiet period in milliseconds.
func (s *SettingsService) SetDebounce(ms int) error {
	return s.update(func(settings *domain.AppSettings) {
		settings.Picker.DebounceMs = ms
	})
}

// SetFeatures sets the feature class and code filters.
// Classes and codes are upper-cased; empty entries are dropped.
func (s *SettingsService) SetFeatures(classes, codes []string) error {
	return s.update(func(settings *domain.AppSettings) {
		settings.Picker.FeatureClasses = cleanCodes(classes)
		settings.Picker.FeatureCodes = cleanCodes(codes)
	})
}

// SetQueryType sets how the provider matches query text.
func (s *SettingsService) SetQueryType(queryType domain.QueryType) error {
	if !queryType.IsValid() {
		return fmt.Errorf("%w: unknown query type %q", domain.ErrInvalidInput, queryType)
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.Picker.QueryType = queryType
	})
}

// Validate checks settings for out-of-range values.
// Failures wrap domain.ErrInvalidInput and name every offending field.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are nil", domain.ErrInvalidInput)
	}

	err := s.validate.Struct(settings)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) update(apply func(settings *domain.AppSettings)) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	apply(settings)
	return s.Save(settings)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt treats a stored zero as a value; only a missing key yields the default.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getQueryType(defaultVal domain.QueryType) domain.QueryType {
	val := s.configStore.GetString(keyQueryType)
	if val == "" {
		return defaultVal
	}
	queryType := domain.QueryType(val)
	if !queryType.IsValid() {
		return defaultVal
	}
	return queryType
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "AppSettings.")
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", field, fe.Param(), fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}

func cleanCodes(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
