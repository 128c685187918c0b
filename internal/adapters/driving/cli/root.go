// Package cli provides the placepick command-line interface built with cobra.
// Services are injected by main before Execute is called.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/placepick/internal/core/domain"
	"github.com/custodia-labs/placepick/internal/core/ports/driving"
	"github.com/custodia-labs/placepick/internal/logger"
)

// version is set at build time via ldflags or by SetVersion.
var version = "dev"

var verbose bool

// Injected services.
var (
	lookupService    driving.LookupService
	selectionService driving.SelectionService
	settingsService  driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "placepick",
	Short: "Search and pick places by name",
	Long: `placepick looks up places by name on GeoNames, folds near-identical
results together and turns the place you pick into a compact value you can
store and decode later.

Set your GeoNames account first:
  placepick settings username <name>

Then search from the command line or interactively:
  placepick search "new york"
  placepick tui`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// Services groups the driving ports used by the commands.
type Services struct {
	Lookup    driving.LookupService
	Selection driving.SelectionService
	Settings  driving.SettingsService
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	lookupService = s.Lookup
	selectionService = s.Selection
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// explain adds a next step to errors a user can fix from the command line.
func explain(err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return errors.Join(err, errors.New("set an account with: placepick settings username <name>"))
	case errors.Is(err, domain.ErrRateLimited):
		return errors.Join(err, errors.New("the GeoNames quota for this account is used up, try again later"))
	default:
		return err
	}
}
