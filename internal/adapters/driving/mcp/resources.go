package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for placepick resources.
	uriScheme = "placepick://"

	mimeJSON = "application/json"
)

// selectionInfo is the resource shape of a stored selection.
type selectionInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Lat       string    `json:"lat"`
	Lng       string    `json:"lng"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

func newSelectionInfo(r *domain.SelectionRecord) selectionInfo {
	return selectionInfo{
		ID:        r.ID,
		Name:      r.Selection.DisplayName,
		Lat:       r.Selection.Latitude,
		Lng:       r.Selection.Longitude,
		Value:     r.Value,
		CreatedAt: r.CreatedAt,
	}
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "selections",
		Name:        "selections",
		Description: "Places saved by the user, newest first",
		MIMEType:    mimeJSON,
	}, s.handleSelectionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "selections/{selectionId}",
		Name:        "selection",
		Description: "A single saved place",
		MIMEType:    mimeJSON,
	}, s.handleSelectionResource)
}

// handleSelectionsResource returns all stored selections.
func (s *Server) handleSelectionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Selection.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing selections: %w", err)
	}

	infos := make([]selectionInfo, len(records))
	for i := range records {
		infos[i] = newSelectionInfo(&records[i])
	}
	return jsonResource(req.Params.URI, infos)
}

// handleSelectionResource returns one stored selection.
func (s *Server) handleSelectionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractSelectionID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, err := s.ports.Selection.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting selection: %w", err)
	}
	return jsonResource(req.Params.URI, newSelectionInfo(record))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractSelectionID extracts the ID from a URI like placepick://selections/{selectionId}.
func extractSelectionID(uri string) string {
	const prefix = uriScheme + "selections/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
