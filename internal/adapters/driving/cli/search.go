package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

var (
	searchJSON         bool
	searchSelect       int
	searchSave         bool
	searchFeatureClass []string
	searchFeatureCode  []string
	searchQueryType    string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search places by name",
	Long: `Looks up places whose name matches the query on GeoNames.
Results that share name, administrative area and country are shown once.

Use --select to print the encoded value of one result, and --save to keep it.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVarP(&searchSelect, "select", "s", 0, "print the encoded value of result N (1-based)")
	searchCmd.Flags().BoolVar(&searchSave, "save", false, "store the selected result (requires --select)")
	searchCmd.Flags().StringSliceVar(&searchFeatureClass, "feature-class", nil, "restrict to feature classes (e.g. P)")
	searchCmd.Flags().StringSliceVar(&searchFeatureCode, "feature-code", nil, "restrict to feature codes (e.g. PPLC)")
	searchCmd.Flags().StringVar(&searchQueryType, "query-type", "", "override how names are matched")
	rootCmd.AddCommand(searchCmd)
}

// placeView is the JSON shape of a search result.
type placeView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AdminName   string `json:"adminName"`
	CountryName string `json:"countryName"`
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
	Label       string `json:"label"`
}

func newPlaceView(c domain.Candidate) placeView {
	return placeView{
		ID:          c.ID,
		Name:        c.Name,
		AdminName:   c.AdminName,
		CountryName: c.CountryName,
		Lat:         c.Latitude,
		Lng:         c.Longitude,
		Label:       c.Label(),
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}
	if searchSave && searchSelect == 0 {
		return errors.New("--save requires --select")
	}

	filters, err := searchFilters()
	if err != nil {
		return err
	}

	candidates, err := lookupService.Search(cmd.Context(), args[0], filters)
	if errors.Is(err, domain.ErrIneligibleQuery) {
		return errors.New(domain.TooltipTooShort(configuredPicker().MinimumSearchLength))
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", explain(err))
	}

	if searchSelect != 0 {
		return selectResult(cmd, candidates, searchSelect)
	}
	if searchJSON {
		return outputSearchJSON(cmd, candidates)
	}
	outputSearchTable(cmd, candidates)
	return nil
}

// searchFilters returns nil unless a flag overrides the configured filters.
func searchFilters() (*domain.SearchFilters, error) {
	if len(searchFeatureClass) == 0 && len(searchFeatureCode) == 0 && searchQueryType == "" {
		return nil, nil
	}

	filters := configuredPicker().Filters()

	if searchQueryType != "" {
		qt := domain.QueryType(searchQueryType)
		if !qt.IsValid() {
			return nil, fmt.Errorf("unknown query type %q", searchQueryType)
		}
		filters.QueryType = qt
	}
	if len(searchFeatureClass) > 0 {
		filters.FeatureClasses = upper(searchFeatureClass)
	}
	if len(searchFeatureCode) > 0 {
		filters.FeatureCodes = upper(searchFeatureCode)
	}
	return &filters, nil
}

func upper(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToUpper(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func selectResult(cmd *cobra.Command, candidates []domain.Candidate, n int) error {
	if n < 1 || n > len(candidates) {
		return fmt.Errorf("no result %d: search returned %d place(s)", n, len(candidates))
	}
	if selectionService == nil {
		return errors.New("selection service not configured")
	}

	candidate := candidates[n-1]
	if searchSave {
		record, err := selectionService.Save(cmd.Context(), candidate)
		if err != nil {
			return fmt.Errorf("failed to save selection: %w", err)
		}
		cmd.PrintErrf("Saved selection %s\n", record.ID)
		fmt.Fprintln(cmd.OutOrStdout(), record.Value)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), selectionService.Encode(candidate))
	return nil
}

func outputSearchJSON(cmd *cobra.Command, candidates []domain.Candidate) error {
	views := make([]placeView, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, newPlaceView(c))
	}
	data, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, candidates []domain.Candidate) {
	if len(candidates) == 0 {
		cmd.Println("No places found.")
		return
	}

	cmd.Println("Places:")
	cmd.Println()
	for i, c := range candidates {
		// Format: [N] Label (lat, lng)
		cmd.Printf("  [%d] %s (%s, %s)\n", i+1, c.Label(), c.Latitude, c.Longitude)
	}
}

// configuredPicker returns the saved picker settings, or the defaults when
// none can be read.
func configuredPicker() domain.PickerSettings {
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s != nil {
			return s.Picker
		}
	}
	return domain.DefaultAppSettings().Picker
}
