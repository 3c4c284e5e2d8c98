package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	owlmcp "github.com/ajitpratap0/ontology-owl/internal/mcp"
	"github.com/ajitpratap0/ontology-owl/internal/store"
)

func mcpCmd() *cobra.Command {
	var (
		in    inputFlags
		graph bool
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Converts the export, then starts an MCP JSON-RPC 2.0 server that reads from
stdin and writes to stdout. All diagnostic logs go to stderr so that stdout
remains exclusively MCP protocol traffic.

Tools exposed:
  lookup_class     class by legacy URI or IRI
  lookup_property  object or datatype property by legacy URI or IRI
  list_entities    filtered listing of classes or properties
  stats            conversion statistics
  export           OWL serialization (rdfxml or turtle)
  push             write the ontology to neo4j (requires --graph)

If neo4j is unavailable at startup the server still starts; push calls
return MCP error responses.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()
			oc := cfg.Ontology
			in.apply(cmd, &oc)

			conv, err := convertOntology(cmd.Context(), afero.NewOsFs(), oc, "", logger)
			if err != nil {
				return fmt.Errorf("mcp: %w", err)
			}

			var st store.Store
			if graph {
				neo, storeErr := newStore(cmd.Context(), logger)
				if storeErr != nil {
					logger.Error("mcp: failed to connect to neo4j; push will fail", "error", storeErr)
				} else {
					defer func() { _ = neo.Close() }()
					st = neo
				}
			}

			srv := owlmcp.NewServer(conv.Ontology, st, version, logger)

			// Use a standard log.Logger pointing at stderr for the mcp-go error logger.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: ontology-owl MCP server starting", "transport", "stdio", "run_id", conv.Ontology.RunID)

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&graph, "graph", false, "connect to neo4j to enable the push tool")
	return cmd
}
