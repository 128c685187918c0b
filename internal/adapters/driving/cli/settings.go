package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

var (
	settingsFeatureClass []string
	settingsFeatureCode  []string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the GeoNames account and how places are searched.

Use subcommands to change a single setting.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsUsernameCmd = &cobra.Command{
	Use:   "username [name]",
	Short: "Set the GeoNames account",
	Long: `Set the GeoNames account that lookups are billed to.
Without an argument the name is read from standard input without echo.

Free accounts can be created at https://www.geonames.org/login.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsUsername,
}

var settingsMinLengthCmd = &cobra.Command{
	Use:   "min-length <n>",
	Short: "Set the minimum search length",
	Long:  `Set the shortest query, in characters, that is sent to GeoNames.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsMinLength,
}

var settingsDebounceCmd = &cobra.Command{
	Use:   "debounce <ms>",
	Short: "Set the typing quiet period",
	Long:  `Set how long, in milliseconds, typing must pause before a search is sent.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDebounce,
}

var settingsFeaturesCmd = &cobra.Command{
	Use:   "features",
	Short: "Set feature class and code filters",
	Long: `Restrict results to GeoNames feature classes and codes.
Passing no flags clears both filters.

Examples:
  placepick settings features --class P
  placepick settings features --class P --code PPLA --code PPLC

See https://www.geonames.org/export/codes.html for the full list.`,
	Args: cobra.NoArgs,
	RunE: runSettingsFeatures,
}

var settingsQueryTypeCmd = &cobra.Command{
	Use:   "query-type [type]",
	Short: "Set how names are matched",
	Long: `Set how GeoNames matches the query text.

Available types:
  name_startsWith - Name starts with the query (default)
  name            - Name matches the query
  name_equals     - Name is exactly the query
  q               - Full text over all place attributes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsQueryType,
}

func init() {
	settingsFeaturesCmd.Flags().StringSliceVar(&settingsFeatureClass, "class", nil, "feature classes (A H L P R S T U V)")
	settingsFeaturesCmd.Flags().StringSliceVar(&settingsFeatureCode, "code", nil, "feature codes (e.g. PPLC)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsUsernameCmd)
	settingsCmd.AddCommand(settingsMinLengthCmd)
	settingsCmd.AddCommand(settingsDebounceCmd)
	settingsCmd.AddCommand(settingsFeaturesCmd)
	settingsCmd.AddCommand(settingsQueryTypeCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Picker]")
	cmd.Printf("  Minimum search length: %d\n", settings.Picker.MinimumSearchLength)
	cmd.Printf("  Debounce: %dms\n", settings.Picker.DebounceMs)
	cmd.Printf("  Query type: %s\n", settings.Picker.QueryType.Description())
	cmd.Printf("  Feature classes: %s\n", listOrNone(settings.Picker.FeatureClasses))
	cmd.Printf("  Feature codes: %s\n", listOrNone(settings.Picker.FeatureCodes))
	cmd.Println()

	cmd.Println("[GeoNames]")
	if settings.GeoNames.IsConfigured() {
		cmd.Printf("  Username: %s\n", maskUsername(settings.GeoNames.Username))
	} else {
		cmd.Println("  Username: (not set)")
	}
	cmd.Printf("  Endpoint: %s\n", settings.GeoNames.BaseURL)
	cmd.Printf("  Rate: %d/s (burst %d)\n", settings.GeoNames.RequestsPerSecond, settings.GeoNames.Burst)
	cmd.Printf("  Timeout: %ds, retries: %d\n", settings.GeoNames.TimeoutSeconds, settings.GeoNames.MaxRetries)
	status := "configured"
	if !settings.GeoNames.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)

	return nil
}

func runSettingsUsername(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var username string
	if len(args) == 1 {
		username = strings.TrimSpace(args[0])
	} else {
		cmd.Print("Enter GeoNames username: ")
		username = readSecret(cmd.InOrStdin())
		cmd.Println()
	}
	if username == "" {
		return errors.New("username is required")
	}

	if err := settingsService.SetUsername(username); err != nil {
		return fmt.Errorf("failed to set username: %w", err)
	}
	cmd.Printf("GeoNames username set: %s\n", maskUsername(username))
	return nil
}

func runSettingsMinLength(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid length %q: %w", args[0], err)
	}
	if err := settingsService.SetMinimumSearchLength(n); err != nil {
		return fmt.Errorf("failed to set minimum search length: %w", err)
	}
	cmd.Printf("Minimum search length set to: %d\n", n)
	return nil
}

func runSettingsDebounce(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	ms, err := strconv.Atoi(strings.TrimSuffix(args[0], "ms"))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", args[0], err)
	}
	if err := settingsService.SetDebounce(ms); err != nil {
		return fmt.Errorf("failed to set debounce: %w", err)
	}
	cmd.Printf("Debounce set to: %dms\n", ms)
	return nil
}

func runSettingsFeatures(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	classes := upper(settingsFeatureClass)
	codes := upper(settingsFeatureCode)
	if err := settingsService.SetFeatures(classes, codes); err != nil {
		return fmt.Errorf("failed to set features: %w", err)
	}
	cmd.Printf("Feature classes: %s\n", listOrNone(classes))
	cmd.Printf("Feature codes: %s\n", listOrNone(codes))
	return nil
}

func runSettingsQueryType(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var selected domain.QueryType
	if len(args) == 1 {
		selected = domain.QueryType(args[0])
		if !selected.IsValid() {
			return fmt.Errorf("unknown query type %q", args[0])
		}
	} else {
		cmd.Println("Select Query Type")
		cmd.Println("-----------------")
		types := domain.AllQueryTypes()
		for i, t := range types {
			cmd.Printf("  %d. %s\n", i+1, t.Description())
		}
		cmd.Print("\nEnter choice: ")
		idx := parseChoice(readLine(bufio.NewReader(cmd.InOrStdin())), len(types), 0)
		if idx == 0 {
			return errors.New("invalid selection")
		}
		selected = types[idx-1]
	}

	if err := settingsService.SetQueryType(selected); err != nil {
		return fmt.Errorf("failed to set query type: %w", err)
	}
	cmd.Printf("Query type set to: %s\n", selected.Description())
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readSecret reads a line without echo when in is an interactive terminal.
func readSecret(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	// Fallback to regular input
	return readLine(bufio.NewReader(in))
}

func maskUsername(name string) string {
	if len(name) <= 4 {
		return "****"
	}
	return name[:2] + "..." + name[len(name)-2:]
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
