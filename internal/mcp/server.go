// Package mcp implements the Model Context Protocol server for ontology-owl.
// Tools answer questions about a converted ontology.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/ontology-owl/internal/models"
	"github.com/ajitpratap0/ontology-owl/internal/owl"
	"github.com/ajitpratap0/ontology-owl/internal/store"
)

const (
	// defaultListLimit is the default number of entities returned by list_entities.
	defaultListLimit = 50

	// maxListLimit caps list_entities results.
	maxListLimit = 1000
)

// Entity kinds accepted by list_entities.
const (
	KindClasses            = "classes"
	KindObjectProperties   = "object_properties"
	KindDataTypeProperties = "datatype_properties"
)

// Server wraps an MCPServer with a converted ontology.
type Server struct {
	mcp    *mcpserver.MCPServer
	onto   *models.Ontology
	st     store.Store
	logger *slog.Logger
}

// NewServer creates a new MCP server. If st is nil the push tool returns an
// error response.
func NewServer(onto *models.Ontology, st store.Store, version string, logger *slog.Logger) *Server {
	s := &Server{
		onto:   onto,
		st:     st,
		logger: logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"ontology-owl",
		version,
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildLookupClassTool(), s.handleLookupClass)
	mcpSrv.AddTool(buildLookupPropertyTool(), s.handleLookupProperty)
	mcpSrv.AddTool(buildListEntitiesTool(), s.handleListEntities)
	mcpSrv.AddTool(buildStatsTool(), s.handleStats)
	mcpSrv.AddTool(buildExportTool(), s.handleExport)
	mcpSrv.AddTool(buildPushTool(), s.handlePush)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleLookupClass is the exported handler for the "lookup_class" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleLookupClass(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleLookupClass(ctx, req)
}

// HandleLookupProperty is the exported handler for the "lookup_property" tool.
func (s *Server) HandleLookupProperty(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleLookupProperty(ctx, req)
}

// HandleListEntities is the exported handler for the "list_entities" tool.
func (s *Server) HandleListEntities(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleListEntities(ctx, req)
}

// HandleStats is the exported handler for the "stats" tool.
func (s *Server) HandleStats(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleStats(ctx, req)
}

// HandleExport is the exported handler for the "export" tool.
func (s *Server) HandleExport(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleExport(ctx, req)
}

// HandlePush is the exported handler for the "push" tool.
func (s *Server) HandlePush(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handlePush(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// --- tool definitions ---

func buildLookupClassTool() mcpgo.Tool {
	return mcpgo.NewTool("lookup_class",
		mcpgo.WithDescription("Look up an ontology class by legacy URI or IRI."),
		mcpgo.WithString("uri",
			mcpgo.Required(),
			mcpgo.Description("Legacy type URI or global IRI of the class"),
		),
	)
}

func buildLookupPropertyTool() mcpgo.Tool {
	return mcpgo.NewTool("lookup_property",
		mcpgo.WithDescription("Look up an object or datatype property by legacy URI or IRI, including component properties."),
		mcpgo.WithString("uri",
			mcpgo.Required(),
			mcpgo.Description("Legacy URI or global IRI of the property"),
		),
	)
}

func buildListEntitiesTool() mcpgo.Tool {
	return mcpgo.NewTool("list_entities",
		mcpgo.WithDescription("List classes, object properties or datatype properties, optionally filtered by label or URI substring."),
		mcpgo.WithString("kind",
			mcpgo.Required(),
			mcpgo.Description("One of: classes, object_properties, datatype_properties"),
		),
		mcpgo.WithString("query",
			mcpgo.Description("Case-insensitive substring matched against label, URI and IRI"),
		),
		mcpgo.WithNumber("limit",
			mcpgo.Description("Maximum number of results (default: 50)"),
		),
	)
}

func buildStatsTool() mcpgo.Tool {
	return mcpgo.NewTool("stats",
		mcpgo.WithDescription("Get conversion statistics: entity counts, resolved link relations and icons."),
	)
}

func buildExportTool() mcpgo.Tool {
	return mcpgo.NewTool("export",
		mcpgo.WithDescription("Serialize the ontology as OWL."),
		mcpgo.WithString("format",
			mcpgo.Description("rdfxml (default) or turtle"),
		),
	)
}

func buildPushTool() mcpgo.Tool {
	return mcpgo.NewTool("push",
		mcpgo.WithDescription("Write the ontology to the configured graph database."),
	)
}

// --- tool handlers ---

func (s *Server) handleLookupClass(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	uri := strings.TrimSpace(req.GetString("uri", ""))
	if uri == "" {
		return mcpgo.NewToolResultError("uri is required and must not be empty"), nil
	}
	c, ok := s.onto.ClassByIRI(uri)
	if !ok {
		return mcpgo.NewToolResultErrorf("class %q not found", uri), nil
	}
	return toolResultJSON(c)
}

func (s *Server) handleLookupProperty(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	uri := strings.TrimSpace(req.GetString("uri", ""))
	if uri == "" {
		return mcpgo.NewToolResultError("uri is required and must not be empty"), nil
	}
	if p, ok := s.onto.ObjectPropertyByIRI(uri); ok {
		return toolResultJSON(map[string]any{"kind": "object_property", "property": p})
	}
	if p, ok := s.onto.DataTypePropertyByIRI(uri); ok {
		return toolResultJSON(map[string]any{"kind": "datatype_property", "property": p})
	}
	return mcpgo.NewToolResultErrorf("property %q not found", uri), nil
}

// entitySummary is a compact list entry.
type entitySummary struct {
	URI   string `json:"uri"`
	IRI   string `json:"iri"`
	Label string `json:"label"`
}

func (s *Server) handleListEntities(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	kind := req.GetString("kind", "")
	query := strings.TrimSpace(req.GetString("query", ""))
	limit := req.GetInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var all []entitySummary
	switch kind {
	case KindClasses:
		for _, c := range s.onto.Classes {
			all = append(all, entitySummary{URI: c.URI, IRI: c.IRI, Label: c.Label})
		}
	case KindObjectProperties:
		for _, p := range s.onto.ObjectProperties {
			all = append(all, entitySummary{URI: p.URI, IRI: p.IRI, Label: p.Label})
		}
	case KindDataTypeProperties:
		for _, p := range s.onto.DataTypeProperties {
			all = append(all, entitySummary{URI: p.URI, IRI: p.IRI, Label: p.Label})
			for _, dep := range p.Dependents {
				all = append(all, entitySummary{URI: dep.URI, IRI: dep.IRI, Label: dep.Label})
			}
		}
	default:
		return mcpgo.NewToolResultErrorf("invalid kind %q: must be one of %s, %s, %s",
			kind, KindClasses, KindObjectProperties, KindDataTypeProperties), nil
	}

	items := make([]entitySummary, 0, limit)
	total := 0
	for _, e := range all {
		if !matches(query, e.URI, e.IRI, e.Label) {
			continue
		}
		total++
		if len(items) < limit {
			items = append(items, e)
		}
	}

	return toolResultJSON(map[string]any{
		"kind":  kind,
		"items": items,
		"total": total,
	})
}

func (s *Server) handleStats(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return toolResultJSON(map[string]any{
		"base_iri": s.onto.BaseIRI,
		"run_id":   s.onto.RunID,
		"stats":    s.onto.Stats,
	})
}

func (s *Server) handleExport(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	format, err := owl.ParseFormat(req.GetString("format", ""))
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	var buf bytes.Buffer
	if err := owl.Write(&buf, s.onto, format); err != nil {
		return mcpgo.NewToolResultErrorf("export failed: %s", err.Error()), nil
	}
	return mcpgo.NewToolResultText(buf.String()), nil
}

func (s *Server) handlePush(ctx context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.st == nil {
		return mcpgo.NewToolResultError("graph store is unavailable"), nil
	}
	if err := s.st.Save(ctx, s.onto); err != nil {
		return mcpgo.NewToolResultErrorf("push failed: %s", err.Error()), nil
	}
	s.logger.Info("mcp: pushed ontology", "base_iri", s.onto.BaseIRI, "run_id", s.onto.RunID)
	return toolResultJSON(map[string]any{"pushed": true, "run_id": s.onto.RunID})
}
