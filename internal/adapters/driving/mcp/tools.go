package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/placepick/internal/core/domain"
)

// SearchPlacesInput is the input schema for the search_places tool.
type SearchPlacesInput struct {
	Query          string   `json:"query" jsonschema:"the place name to look up"`
	QueryType      string   `json:"query_type,omitempty" jsonschema:"name_startsWith, name, name_equals or q"`
	FeatureClasses []string `json:"feature_classes,omitempty" jsonschema:"GeoNames feature classes, e.g. P for populated places"`
	FeatureCodes   []string `json:"feature_codes,omitempty" jsonschema:"GeoNames feature codes, e.g. PPLC for capitals"`
}

// SearchPlacesOutput is the output schema for the search_places tool.
type SearchPlacesOutput struct {
	Places []PlaceOutput `json:"places"`
	Count  int           `json:"count"`
}

// PlaceOutput represents a single place candidate.
type PlaceOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AdminName   string `json:"admin_name,omitempty"`
	CountryName string `json:"country_name,omitempty"`
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
	Label       string `json:"label"`
	Value       string `json:"value"`
}

// DecodeSelectionInput is the input schema for the decode_selection tool.
type DecodeSelectionInput struct {
	Value string `json:"value" jsonschema:"a stored place value"`
}

// SelectionOutput is a decoded place value.
type SelectionOutput struct {
	Name string `json:"name"`
	Lat  string `json:"lat"`
	Lng  string `json:"lng"`
}

// PlaceInput describes a place by its parts.
// It is the input schema for the encode_selection and save_place tools.
type PlaceInput struct {
	Name        string `json:"name" jsonschema:"the place name"`
	AdminName   string `json:"admin_name,omitempty" jsonschema:"the administrative area"`
	CountryName string `json:"country_name,omitempty" jsonschema:"the country"`
	Lat         string `json:"lat" jsonschema:"latitude in decimal degrees"`
	Lng         string `json:"lng" jsonschema:"longitude in decimal degrees"`
}

// EncodeSelectionOutput is the output schema for the encode_selection tool.
type EncodeSelectionOutput struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SavePlaceOutput is the output schema for the save_place tool.
type SavePlaceOutput struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_places",
		Description: "Look up places by name; each result carries the value to store for it",
	}, s.handleSearchPlaces)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "decode_selection",
		Description: "Decode a stored place value into its name and coordinates",
	}, s.handleDecodeSelection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "encode_selection",
		Description: "Encode a place into the value stored for it",
	}, s.handleEncodeSelection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_place",
		Description: "Store a place and return its value",
	}, s.handleSavePlace)
}

// handleSearchPlaces handles the search_places tool invocation.
func (s *Server) handleSearchPlaces(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchPlacesInput,
) (*mcp.CallToolResult, SearchPlacesOutput, error) {
	filters, err := toolFilters(input)
	if err != nil {
		return nil, SearchPlacesOutput{}, err
	}

	candidates, err := s.ports.Lookup.Search(ctx, input.Query, filters)
	if errors.Is(err, domain.ErrIneligibleQuery) {
		return nil, SearchPlacesOutput{}, fmt.Errorf("query %q is too short to search", input.Query)
	}
	if err != nil {
		return nil, SearchPlacesOutput{}, err
	}

	output := SearchPlacesOutput{
		Places: make([]PlaceOutput, len(candidates)),
		Count:  len(candidates),
	}
	for i, c := range candidates {
		output.Places[i] = PlaceOutput{
			ID:          c.ID,
			Name:        c.Name,
			AdminName:   c.AdminName,
			CountryName: c.CountryName,
			Lat:         c.Latitude,
			Lng:         c.Longitude,
			Label:       c.Label(),
			Value:       s.ports.Selection.Encode(c),
		}
	}

	return nil, output, nil
}

// toolFilters returns nil unless the input overrides the configured filters.
func toolFilters(input SearchPlacesInput) (*domain.SearchFilters, error) {
	if input.QueryType == "" && len(input.FeatureClasses) == 0 && len(input.FeatureCodes) == 0 {
		return nil, nil
	}

	filters := &domain.SearchFilters{}
	if input.QueryType != "" {
		filters.QueryType = domain.QueryType(input.QueryType)
		if !filters.QueryType.IsValid() {
			return nil, fmt.Errorf("unknown query type %q", input.QueryType)
		}
	}
	for _, c := range input.FeatureClasses {
		filters.FeatureClasses = append(filters.FeatureClasses, strings.ToUpper(c))
	}
	for _, c := range input.FeatureCodes {
		filters.FeatureCodes = append(filters.FeatureCodes, strings.ToUpper(c))
	}
	return filters, nil
}

// handleDecodeSelection handles the decode_selection tool invocation.
func (s *Server) handleDecodeSelection(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DecodeSelectionInput,
) (*mcp.CallToolResult, SelectionOutput, error) {
	sel, err := s.ports.Selection.Decode(input.Value)
	if err != nil {
		return nil, SelectionOutput{}, err
	}
	return nil, SelectionOutput{
		Name: sel.DisplayName,
		Lat:  sel.Latitude,
		Lng:  sel.Longitude,
	}, nil
}

// handleEncodeSelection handles the encode_selection tool invocation.
func (s *Server) handleEncodeSelection(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input PlaceInput,
) (*mcp.CallToolResult, EncodeSelectionOutput, error) {
	candidate, err := input.candidate()
	if err != nil {
		return nil, EncodeSelectionOutput{}, err
	}
	return nil, EncodeSelectionOutput{
		Label: candidate.Label(),
		Value: s.ports.Selection.Encode(candidate),
	}, nil
}

// handleSavePlace handles the save_place tool invocation.
func (s *Server) handleSavePlace(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlaceInput,
) (*mcp.CallToolResult, SavePlaceOutput, error) {
	candidate, err := input.candidate()
	if err != nil {
		return nil, SavePlaceOutput{}, err
	}

	record, err := s.ports.Selection.Save(ctx, candidate)
	if err != nil {
		return nil, SavePlaceOutput{}, fmt.Errorf("saving place: %w", err)
	}
	return nil, SavePlaceOutput{ID: record.ID, Value: record.Value}, nil
}

func (in PlaceInput) candidate() (domain.Candidate, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Candidate{}, errors.New("name is required")
	}
	return domain.Candidate{
		Name:        in.Name,
		AdminName:   in.AdminName,
		CountryName: in.CountryName,
		Latitude:    in.Lat,
		Longitude:   in.Lng,
	}, nil
}
