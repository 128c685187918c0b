package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

var decodeJSON bool

var decodeCmd = &cobra.Command{
	Use:   "decode [value]",
	Short: "Decode a stored place value",
	Long: `Decodes a value produced by 'placepick search --select' or the picker
and prints the place name and coordinates.

Without an argument the value is read from standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(decodeCmd)
}

// selectionView is the JSON shape of a decoded selection.
type selectionView struct {
	Name string `json:"name"`
	Lat  string `json:"lat"`
	Lng  string `json:"lng"`
}

func runDecode(cmd *cobra.Command, args []string) error {
	if selectionService == nil {
		return errors.New("selection service not configured")
	}

	var value string
	if len(args) == 1 {
		value = args[0]
	} else {
		data, err := readAll(cmd)
		if err != nil {
			return fmt.Errorf("reading value: %w", err)
		}
		value = strings.TrimSpace(data)
	}

	sel, err := selectionService.Decode(value)
	if err != nil {
		return err
	}

	if decodeJSON {
		return printSelectionJSON(cmd, sel)
	}
	printSelection(cmd, sel)
	return nil
}

func printSelection(cmd *cobra.Command, sel domain.Selection) {
	cmd.Printf("Name: %s\n", sel.DisplayName)
	cmd.Printf("Latitude: %s\n", sel.Latitude)
	cmd.Printf("Longitude: %s\n", sel.Longitude)
}

func printSelectionJSON(cmd *cobra.Command, sel domain.Selection) error {
	data, err := json.MarshalIndent(selectionView{
		Name: sel.DisplayName,
		Lat:  sel.Latitude,
		Lng:  sel.Longitude,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
