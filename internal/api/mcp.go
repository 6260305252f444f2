package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/autopro/internal/catalog"
	"github.com/kalambet/autopro/internal/configurator"
	"github.com/kalambet/autopro/internal/search"
	"github.com/kalambet/autopro/internal/session"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Catalog     *catalog.Catalog
	Session     *session.Manager
	DefaultSort search.SortKey
}

// NewMCPServer creates an MCP server with the dealership tools and resources registered.
func NewMCPServer(deps MCPDeps, version string) *server.MCPServer {
	if deps.DefaultSort == "" {
		deps.DefaultSort = search.DefaultSort
	}

	s := server.NewMCPServer(
		"autopro",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("autopro: used-car search, new-car price quotes and saved searches for the signed-in dealership account."),
		server.WithRecovery(),
	)

	// Tools
	s.AddTool(
		mcp.NewTool("search_used_cars",
			append([]mcp.ToolOption{
				mcp.WithDescription("Filter and sort the used-car inventory. Returns matching listings with price statistics."),
			}, queryParams()...)...,
		),
		mcpSearchUsedCars(deps),
	)

	s.AddTool(
		mcp.NewTool("quote_configuration",
			mcp.WithDescription("Price a new-car configuration. Every part is optional; the quote lists what is still missing."),
			mcp.WithString("model", mcp.Description("Model id, e.g. apex-suv")),
			mcp.WithString("trim", mcp.Description("Trim id, e.g. luxury")),
			mcp.WithString("powertrain", mcp.Description("Powertrain id, e.g. hybrid-250")),
			mcp.WithString("exterior", mcp.Description("Exterior package id, e.g. racing-red")),
			mcp.WithArray("accessories", mcp.Description("Accessory ids"), mcp.WithStringItems()),
		),
		mcpQuoteConfiguration(deps),
	)

	s.AddTool(
		mcp.NewTool("save_search",
			append([]mcp.ToolOption{
				mcp.WithDescription("Save a used-car search to the signed-in account."),
				mcp.WithString("name", mcp.Description("Name for the saved search (defaults to a dated name)")),
			}, queryParams()...)...,
		),
		mcpSaveSearch(deps),
	)

	// Resources
	s.AddResource(
		mcp.NewResource(
			"catalog://filter-options",
			"Used-car filter options",
			mcp.WithResourceDescription("Makes, fuel types, locations and value ranges offered by the used-car filter"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceFilterOptions(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"account://saved-filters",
			"Saved searches",
			mcp.WithResourceDescription("Searches saved to the signed-in account"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceSavedFilters(deps),
	)

	return s
}

func queryParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("query", mcp.Description("Free text matched against make and model")),
		mcp.WithString("make", mcp.Description("Exact make, e.g. BMW")),
		mcp.WithString("body_type", mcp.Description("Exact body type, e.g. SUV")),
		mcp.WithString("fuel", mcp.Description("Exact fuel type")),
		mcp.WithString("transmission", mcp.Description("Exact transmission")),
		mcp.WithString("drivetrain", mcp.Description("Exact drivetrain")),
		mcp.WithString("location", mcp.Description("Exact location")),
		mcp.WithNumber("min_price", mcp.Description("Minimum price in EUR")),
		mcp.WithNumber("max_price", mcp.Description("Maximum price in EUR")),
		mcp.WithNumber("min_year", mcp.Description("Earliest model year")),
		mcp.WithNumber("max_year", mcp.Description("Latest model year")),
		mcp.WithNumber("min_mileage", mcp.Description("Minimum mileage in km")),
		mcp.WithNumber("max_mileage", mcp.Description("Maximum mileage in km")),
		mcp.WithString("sort", mcp.Description("priceAsc, priceDesc, yearDesc or mileageAsc")),
	}
}

func queryFromRequest(req mcp.CallToolRequest) (search.Query, error) {
	q := search.Query{
		Text:         req.GetString("query", ""),
		Make:         req.GetString("make", ""),
		BodyType:     req.GetString("body_type", ""),
		Fuel:         req.GetString("fuel", ""),
		Transmission: req.GetString("transmission", ""),
		Drivetrain:   req.GetString("drivetrain", ""),
		Location:     req.GetString("location", ""),
		MinPrice:     req.GetInt("min_price", 0),
		MaxPrice:     req.GetInt("max_price", 0),
		MinYear:      req.GetInt("min_year", 0),
		MaxYear:      req.GetInt("max_year", 0),
		MinMileage:   req.GetInt("min_mileage", 0),
		MaxMileage:   req.GetInt("max_mileage", 0),
	}
	if s := req.GetString("sort", ""); s != "" {
		key, err := search.ParseSortKey(s)
		if err != nil {
			return search.Query{}, err
		}
		q.SortBy = key
	}
	return q, nil
}

func mcpSearchUsedCars(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := queryFromRequest(req)
		if err != nil {
			return mcpError(err.Error()), nil
		}
		if q.SortBy == "" {
			q.SortBy = deps.DefaultSort
		}
		resp, err := runSearch(deps.Catalog, q)
		if err != nil {
			return mcpError(err.Error()), nil
		}
		return mcpJSON(resp)
	}
}

func mcpQuoteConfiguration(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids := configurator.SelectionIDs{
			Model:       req.GetString("model", ""),
			Trim:        req.GetString("trim", ""),
			Powertrain:  req.GetString("powertrain", ""),
			Exterior:    req.GetString("exterior", ""),
			Accessories: req.GetStringSlice("accessories", nil),
		}
		sel, err := configurator.Resolve(deps.Catalog, ids)
		if err != nil {
			return mcpError(err.Error()), nil
		}
		return mcpJSON(configurator.NewQuote(sel))
	}
}

func mcpSaveSearch(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q, err := queryFromRequest(req)
		if err != nil {
			return mcpError(err.Error()), nil
		}
		saved, err := deps.Session.AddFilter(q, req.GetString("name", ""))
		if err != nil {
			return mcpError(fmt.Sprintf("failed to save search: %v", err)), nil
		}
		return mcpText(fmt.Sprintf("Saved search %q as %s", saved.Name, saved.ID)), nil
	}
}

func mcpResourceFilterOptions(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(req.Params.URI, deps.Catalog.FilterOptions())
	}
}

func mcpResourceSavedFilters(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if !deps.Session.Authenticated() {
			return nil, session.ErrNotAuthenticated
		}
		return jsonResource(req.Params.URI, deps.Session.Filters())
	}
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}

func mcpJSON(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcpText(string(b)), nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
