package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/ontology-owl/internal/config"
	"github.com/ajitpratap0/ontology-owl/internal/owl"
)

func convertCmd() *cobra.Command {
	var (
		in     inputFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an ontology export to OWL",
		Long: `Reads every XML document below the input directory, resolves link relations
and icons, and writes the ontology to <output_dir>/<output_file>.
Use --output - to write to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			oc := cfg.Ontology
			in.apply(cmd, &oc)
			if format != "" {
				oc.Format = format
			}
			if output != "" && output != "-" {
				oc.OutputDir = output
			}

			path, err := runConvert(cmd.Context(), afero.NewOsFs(), oc, output == "-", cmd.OutOrStdout(), logger)
			if err != nil {
				return fmt.Errorf("convert: %w", err)
			}
			if path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (overrides ontology.output_dir); - writes to stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: rdfxml or turtle (overrides ontology.format)")
	return cmd
}

// runConvert converts the export described by oc and writes the result. When
// toStdout is set the ontology goes to stdout and resources are not extracted.
// It returns the path written, or "" for stdout.
func runConvert(ctx context.Context, fs afero.Fs, oc config.OntologyConfig, toStdout bool, stdout io.Writer, logger *slog.Logger) (string, error) {
	f, err := owl.ParseFormat(oc.Format)
	if err != nil {
		return "", err
	}

	outputDir := oc.OutputDir
	if toStdout {
		outputDir = ""
	}
	conv, err := convertOntology(ctx, fs, oc, outputDir, logger)
	if err != nil {
		return "", err
	}

	if toStdout {
		return "", owl.Write(stdout, conv.Ontology, f)
	}

	name := oc.OutputFile
	if info, ok := f.Info(); ok && name == config.DefaultOutputFile {
		name = info.DefaultFile
	}
	if err := fs.MkdirAll(oc.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(oc.OutputDir, name)
	out, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}
	if err := owl.Write(out, conv.Ontology, f); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing output file: %w", err)
	}

	s := conv.Ontology.Stats
	logger.Info("conversion complete",
		"run_id", conv.Ontology.RunID,
		"output", path,
		"classes", s.Classes,
		"object_properties", s.ObjectProperties,
		"datatype_properties", s.DataTypeProperties,
		"files_failed", conv.Load.Failed,
	)
	return path, nil
}
