package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/ontology-owl/internal/assembler"
	"github.com/ajitpratap0/ontology-owl/internal/config"
	"github.com/ajitpratap0/ontology-owl/internal/models"
	"github.com/ajitpratap0/ontology-owl/internal/store"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfg        *config.Config
	configPath string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := &cobra.Command{
		Use:     "ontology-owl",
		Short:   "ontology-owl converts a Palantir ontology export into an OWL ontology",
		Long:    "Reads the XML documents of a Palantir ontology export, resolves link relations and icons, and writes an OWL ontology.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configPath != "" {
				cfg, err = config.LoadFile(configPath)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.ontology-owl/config.yaml or ./config.yaml)")

	rootCmd.AddCommand(
		convertCmd(),
		inspectCmd(),
		statsCmd(),
		serveCmd(),
		mcpCmd(),
		pushCmd(),
	)

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch strings.ToLower(cfg.Logging.Level) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newStore(ctx context.Context, logger *slog.Logger) (*store.Neo4jStore, error) {
	return store.NewNeo4jStore(ctx,
		cfg.Neo4j.URI,
		cfg.Neo4j.Username,
		cfg.Neo4j.Password,
		cfg.Neo4j.Database,
		logger,
	)
}

// inputFlags are the conversion overrides shared by every command that reads an export.
type inputFlags struct {
	input    string
	baseIRI  string
	resource string
	strict   bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "ontology export directory (overrides ontology.input_dir)")
	cmd.Flags().StringVar(&f.baseIRI, "base-iri", "", "base IRI of generated identifiers (overrides ontology.base_iri)")
	cmd.Flags().StringVar(&f.resource, "resource-dir", "", "directory icon paths are resolved against (overrides ontology.resource_dir)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "treat every unreadable input file as fatal")
}

// apply copies the flags that were set onto c.
func (f *inputFlags) apply(cmd *cobra.Command, c *config.OntologyConfig) {
	if f.input != "" {
		c.InputDir = f.input
	}
	if f.baseIRI != "" {
		c.BaseIRI = f.baseIRI
	}
	if f.resource != "" {
		c.ResourceDir = f.resource
	}
	if cmd.Flags().Changed("strict") {
		c.Strict = f.strict
	}
}

// conversion is the outcome of convertOntology.
type conversion struct {
	Ontology *models.Ontology
	Load     assembler.LoadResult
}

// convertOntology loads every document under oc.InputDir and resolves the ontology.
// Embedded resources are extracted below outputDir when it is not empty.
func convertOntology(ctx context.Context, fs afero.Fs, oc config.OntologyConfig, outputDir string, logger *slog.Logger) (*conversion, error) {
	a := assembler.New(assembler.Options{
		BaseIRI:      oc.BaseIRI,
		Fs:           fs,
		ResourceRoot: oc.ResourceRoot(),
		OutputDir:    outputDir,
		Strict:       oc.Strict,
	}, logger)

	logger.Info("converting ontology", "run_id", a.RunID(), "input", oc.InputDir, "base_iri", oc.BaseIRI)

	res, err := a.LoadDir(ctx, oc.InputDir)
	if err != nil {
		return nil, err
	}
	onto, err := a.Run()
	if err != nil {
		return nil, err
	}
	return &conversion{Ontology: onto, Load: res}, nil
}
