package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/ontology-owl/internal/models"
)

func inspectCmd() *cobra.Command {
	var (
		in     inputFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the resolved entity graph as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			oc := cfg.Ontology
			in.apply(cmd, &oc)

			conv, err := convertOntology(cmd.Context(), afero.NewOsFs(), oc, "", logger)
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			if err := writeInspect(cmd.OutOrStdout(), conv.Ontology, format); err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

func writeInspect(w io.Writer, onto *models.Ontology, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(onto); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(onto); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q: must be json or yaml", format)
	}
	return nil
}
