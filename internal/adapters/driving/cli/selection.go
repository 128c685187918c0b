package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

var selectionJSON bool

var selectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Manage saved places",
	Long:  `List, show and delete places saved with --save.`,
}

var selectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved places",
	RunE:  runSelectionList,
}

var selectionShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a saved place",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelectionShow,
}

var selectionDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved place",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelectionDelete,
}

func init() {
	selectionListCmd.Flags().BoolVar(&selectionJSON, "json", false, "output as JSON")
	selectionCmd.AddCommand(selectionListCmd)
	selectionCmd.AddCommand(selectionShowCmd)
	selectionCmd.AddCommand(selectionDeleteCmd)
	rootCmd.AddCommand(selectionCmd)
}

// recordView is the JSON shape of a saved selection.
type recordView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Lat       string    `json:"lat"`
	Lng       string    `json:"lng"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

func runSelectionList(cmd *cobra.Command, _ []string) error {
	if selectionService == nil {
		return errors.New("selection service not configured")
	}

	records, err := selectionService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list selections: %w", err)
	}

	if selectionJSON {
		views := make([]recordView, 0, len(records))
		for i := range records {
			views = append(views, recordView{
				ID:        records[i].ID,
				Name:      records[i].Selection.DisplayName,
				Lat:       records[i].Selection.Latitude,
				Lng:       records[i].Selection.Longitude,
				Value:     records[i].Value,
				CreatedAt: records[i].CreatedAt,
			})
		}
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal selections: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No saved places.")
		return nil
	}

	cmd.Println("Saved places:")
	cmd.Println()
	for i := range records {
		cmd.Printf("  %s  %s (%s, %s)\n",
			records[i].ID,
			records[i].Selection.DisplayName,
			records[i].Selection.Latitude,
			records[i].Selection.Longitude)
	}
	return nil
}

func runSelectionShow(cmd *cobra.Command, args []string) error {
	if selectionService == nil {
		return errors.New("selection service not configured")
	}

	record, err := selectionService.Get(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("selection %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get selection: %w", err)
	}

	cmd.Printf("ID: %s\n", record.ID)
	printSelection(cmd, record.Selection)
	cmd.Printf("Saved: %s\n", record.CreatedAt.Local().Format(time.DateTime))
	cmd.Printf("Value: %s\n", record.Value)
	return nil
}

func runSelectionDelete(cmd *cobra.Command, args []string) error {
	if selectionService == nil {
		return errors.New("selection service not configured")
	}

	err := selectionService.Delete(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("selection %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to delete selection: %w", err)
	}

	cmd.Printf("Deleted selection %s\n", args[0])
	return nil
}

func readAll(cmd *cobra.Command) (string, error) {
	var sb strings.Builder
	if _, err := io.Copy(&sb, cmd.InOrStdin()); err != nil {
		return "", err
	}
	return sb.String(), nil
}
