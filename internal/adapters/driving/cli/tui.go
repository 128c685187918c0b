package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/placepick/internal/adapters/driving/tui"
	"github.com/custodia-labs/placepick/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/placepick/internal/core/ports/driving"
	"github.com/custodia-labs/placepick/internal/logger"
)

// ConfigReloader reports changes of the settings file.
// Each value received is the outcome of one reload; nil means the new
// settings were read successfully. The channel closes when ctx is done.
type ConfigReloader interface {
	Reloads(ctx context.Context) (<-chan error, error)
}

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	Picker   driving.PickerService
	Settings driving.SettingsService
	Reloader ConfigReloader

	// LogPath receives verbose logs while the TUI owns the terminal.
	LogPath string
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

var (
	tuiPrint bool
	tuiSave  bool
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive place picker",
	Long: `Launch the interactive place picker.

Type a place name; results appear once typing pauses. The settings file
is watched, so changes made with 'placepick settings' apply immediately.

Controls:
  ↑/↓, Tab - Move through results
  Enter    - Pick the highlighted place
  Esc      - Clear the input, or quit when it is empty
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiPrint, "print", false, "print the encoded value of the picked place")
	tuiCmd.Flags().BoolVar(&tuiSave, "save", false, "store the picked place")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if tuiConfig == nil || tuiConfig.Picker == nil {
		return errors.New("picker service not configured")
	}
	if tuiSave && selectionService == nil {
		return errors.New("selection service not configured")
	}

	if logger.IsVerbose() {
		closeLog, err := redirectLogs(tuiConfig.LogPath)
		if err != nil {
			return err
		}
		defer closeLog()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app, err := tui.NewApp(tui.NewPorts(tuiConfig.Picker))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	if tuiConfig.Reloader != nil {
		reloads, err := tuiConfig.Reloader.Reloads(ctx)
		if err != nil {
			logger.Warn("settings file not watched: %v", err)
		} else {
			go forwardReloads(reloads, tuiConfig.Picker, tuiConfig.Settings, app.Send)
		}
	}

	if err := app.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("TUI error: %w", err)
	}

	return handlePick(cmd, app)
}

// forwardReloads applies every successful reload to the picker and tells
// the UI about the outcome.
func forwardReloads(
	reloads <-chan error,
	picker driving.PickerService,
	settings driving.SettingsService,
	send func(tea.Msg),
) {
	for reloadErr := range reloads {
		send(applyReload(reloadErr, picker, settings))
	}
}

func applyReload(
	reloadErr error,
	picker driving.PickerService,
	settings driving.SettingsService,
) messages.SettingsReloaded {
	if reloadErr != nil {
		return messages.SettingsReloaded{Err: reloadErr}
	}
	if settings == nil {
		return messages.SettingsReloaded{Err: errors.New("settings service not configured")}
	}

	current, err := settings.Get()
	if err != nil {
		return messages.SettingsReloaded{Err: err}
	}
	if err := settings.Validate(current); err != nil {
		return messages.SettingsReloaded{Err: err}
	}

	picker.SetSettings(current.Picker)
	logger.Debug("picker settings reloaded")
	return messages.SettingsReloaded{Settings: current.Picker}
}

func handlePick(cmd *cobra.Command, app *tui.App) error {
	pick := app.Picked()
	if pick == nil {
		return nil
	}

	if tuiSave {
		record, err := selectionService.Save(cmd.Context(), pick.Candidate)
		if err != nil {
			return fmt.Errorf("failed to save selection: %w", err)
		}
		cmd.PrintErrf("Saved selection %s\n", record.ID)
	}
	if tuiPrint {
		fmt.Fprintln(cmd.OutOrStdout(), pick.Encoded)
		return nil
	}

	cmd.Printf("Picked: %s (%s, %s)\n",
		pick.Selection.DisplayName, pick.Selection.Latitude, pick.Selection.Longitude)
	return nil
}

// redirectLogs sends verbose logs to path so they do not tear the UI.
// Logging is switched off when no path is configured.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		logger.SetVerbose(false)
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
