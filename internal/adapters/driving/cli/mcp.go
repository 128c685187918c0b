package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/placepick/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can look up
places and read saved ones.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Tools:
  search_places     - Look up places by name
  decode_selection  - Decode a stored place value
  encode_selection  - Encode a place into its stored value
  save_place        - Store a place and return its value

Resources:
  placepick://selections        - Saved places
  placepick://selections/{id}   - One saved place

Examples:
  # Stdio mode (default)
  placepick mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  placepick mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Lookup:    lookupService,
		Selection: selectionService,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
