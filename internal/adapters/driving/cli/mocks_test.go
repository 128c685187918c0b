package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/custodia-labs/placepick/internal/core/domain"
	"github.com/custodia-labs/placepick/internal/core/ports/driving"
)

// MockLookupService implements driving.LookupService for CLI tests.
type MockLookupService struct {
	SearchFunc func(ctx context.Context, raw string, filters *domain.SearchFilters) ([]domain.Candidate, error)

	lastQuery   string
	lastFilters *domain.SearchFilters
}

func (m *MockLookupService) Search(
	ctx context.Context, raw string, filters *domain.SearchFilters,
) ([]domain.Candidate, error) {
	m.lastQuery = raw
	m.lastFilters = filters
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, raw, filters)
	}
	return testCandidates(), nil
}

// MockSelectionService implements driving.SelectionService for CLI tests.
type MockSelectionService struct {
	records []domain.SelectionRecord
	err     error
	deleted []string
}

func (m *MockSelectionService) Encode(candidate domain.Candidate) string {
	return domain.EncodeSelection(domain.NewSelection(candidate))
}

func (m *MockSelectionService) Decode(value string) (domain.Selection, error) {
	return domain.DecodeSelection(value)
}

func (m *MockSelectionService) Save(_ context.Context, candidate domain.Candidate) (*domain.SelectionRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	sel := domain.NewSelection(candidate)
	record := domain.SelectionRecord{
		ID:        "sel-" + candidate.ID,
		Value:     domain.EncodeSelection(sel),
		Selection: sel,
	}
	m.records = append(m.records, record)
	return &record, nil
}

func (m *MockSelectionService) Get(_ context.Context, id string) (*domain.SelectionRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.records {
		if m.records[i].ID == id {
			r := m.records[i]
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockSelectionService) List(_ context.Context) ([]domain.SelectionRecord, error) {
	return m.records, m.err
}

func (m *MockSelectionService) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockSettingsService implements driving.SettingsService for CLI tests.
type MockSettingsService struct {
	settings    domain.AppSettings
	getErr      error
	setErr      error
	validateErr error
}

func NewMockSettingsService() *MockSettingsService {
	return &MockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.settings = *settings
	return nil
}

func (m *MockSettingsService) SetUsername(username string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.settings.GeoNames.Username = username
	return nil
}

func (m *MockSettingsService) SetMinimumSearchLength(length int) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.settings.Picker.MinimumSearchLength = length
	return nil
}

func (m *MockSettingsService) SetDebounce(ms int) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.settings.Picker.DebounceMs = ms
	return nil
}

func (m *MockSettingsService) SetFeatures(classes, codes []string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.settings.Picker.FeatureClasses = classes
	m.settings.Picker.FeatureCodes = codes
	return nil
}

func (m *MockSettingsService) SetQueryType(queryType domain.QueryType) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.settings.Picker.QueryType = queryType
	return nil
}

func (m *MockSettingsService) Validate(_ *domain.AppSettings) error {
	return m.validateErr
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// MockPickerService implements driving.PickerService for CLI tests.
type MockPickerService struct {
	mu       sync.Mutex
	settings []domain.PickerSettings
}

func (m *MockPickerService) SetInput(_ context.Context, _ string) {}

func (m *MockPickerService) Select(_ context.Context, _ int) (domain.Pick, error) {
	return domain.Pick{}, domain.ErrInvalidInput
}

func (m *MockPickerService) Snapshot() domain.Snapshot {
	return domain.Snapshot{State: domain.StateIdle}
}

func (m *MockPickerService) Subscribe(_ func(domain.Snapshot)) func() {
	return func() {}
}

func (m *MockPickerService) SetSettings(settings domain.PickerSettings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = append(m.settings, settings)
}

func (m *MockPickerService) Close() {}

func (m *MockPickerService) applied() []domain.PickerSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.PickerSettings(nil), m.settings...)
}

var _ driving.PickerService = (*MockPickerService)(nil)

func testCandidates() []domain.Candidate {
	return []domain.Candidate{
		{
			ID:          "4250542",
			Name:        "Springfield",
			AdminName:   "Illinois",
			CountryName: "United States",
			Latitude:    "39.80172",
			Longitude:   "-89.64371",
		},
		{
			ID:          "4409896",
			Name:        "Springfield",
			AdminName:   "Missouri",
			CountryName: "United States",
			Latitude:    "37.21533",
			Longitude:   "-93.29824",
		},
	}
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	lookup    *MockLookupService
	selection *MockSelectionService
	settings  *MockSettingsService
}

// setupTestServices installs mock services and resets command flags.
// Returns a cleanup function.
func setupTestServices() (*testServices, func()) {
	oldLookup, oldSelection, oldSettings := lookupService, selectionService, settingsService

	ts := &testServices{
		lookup:    &MockLookupService{},
		selection: &MockSelectionService{},
		settings:  NewMockSettingsService(),
	}
	SetServices(Services{Lookup: ts.lookup, Selection: ts.selection, Settings: ts.settings})
	resetFlags()

	return ts, func() {
		lookupService, selectionService, settingsService = oldLookup, oldSelection, oldSettings
		resetFlags()
	}
}

// resetFlags restores flag variables; cobra keeps parsed values between runs.
func resetFlags() {
	searchJSON, searchSelect, searchSave = false, 0, false
	searchFeatureClass, searchFeatureCode, searchQueryType = nil, nil, ""
	decodeJSON = false
	selectionJSON = false
	settingsFeatureClass, settingsFeatureCode = nil, nil
	tuiPrint, tuiSave = false, false
	verbose = false
}

// execute runs the root command with args and returns stdout and stderr.
func execute(args []string, stdin string) (string, string, error) {
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
