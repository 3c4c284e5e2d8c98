package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Convert an export and show entity statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			oc := cfg.Ontology
			in.apply(cmd, &oc)

			conv, err := convertOntology(cmd.Context(), afero.NewOsFs(), oc, "", logger)
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			printStats(cmd.OutOrStdout(), conv)
			return nil
		},
	}

	in.register(cmd)
	return cmd
}

func printStats(w io.Writer, conv *conversion) {
	s := conv.Ontology.Stats
	fmt.Fprintf(w, "Ontology: %s\n", conv.Ontology.BaseIRI)
	fmt.Fprintf(w, "Run:      %s\n\n", conv.Ontology.RunID)

	fmt.Fprintln(w, "Files:")
	fmt.Fprintf(w, "  %-22s %d\n", "seen", conv.Load.Files)
	fmt.Fprintf(w, "  %-22s %d\n", "ingested", conv.Load.Ingested)
	fmt.Fprintf(w, "  %-22s %d\n", "ignored", conv.Load.Ignored)
	fmt.Fprintf(w, "  %-22s %d\n", "failed", conv.Load.Failed)

	fmt.Fprintln(w, "\nEntities:")
	fmt.Fprintf(w, "  %-22s %d\n", "classes", s.Classes)
	fmt.Fprintf(w, "  %-22s %d\n", "object properties", s.ObjectProperties)
	fmt.Fprintf(w, "  %-22s %d\n", "datatype properties", s.DataTypeProperties)
	fmt.Fprintf(w, "  %-22s %d\n", "dependent properties", s.DependentProperties)

	fmt.Fprintln(w, "\nResolution:")
	fmt.Fprintf(w, "  %-22s %d\n", "link relations", s.LinkRelations)
	fmt.Fprintf(w, "  %-22s %d\n", "icons backfilled", s.IconsBackfilled)
	fmt.Fprintf(w, "  %-22s %d\n", "unclaimed icons", s.UnclaimedIcons)
	fmt.Fprintf(w, "  %-22s %d\n", "icons never resolved", s.PendingIcons)
}
