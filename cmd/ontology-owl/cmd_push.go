package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/ontology-owl/internal/models"
	"github.com/ajitpratap0/ontology-owl/internal/store"
)

func pushCmd() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Convert an export and write the ontology graph to neo4j",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()
			oc := cfg.Ontology
			in.apply(cmd, &oc)

			conv, err := convertOntology(ctx, afero.NewOsFs(), oc, "", logger)
			if err != nil {
				return fmt.Errorf("push: %w", err)
			}

			logger.Debug("connecting to neo4j", "config", cfg.Neo4j.String())
			st, err := newStore(ctx, logger)
			if err != nil {
				return fmt.Errorf("push: connecting to neo4j: %w", err)
			}
			defer func() { _ = st.Close() }()

			if err := pushOntology(ctx, st, conv.Ontology, cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("push: %w", err)
			}
			return nil
		},
	}

	in.register(cmd)
	return cmd
}

func pushOntology(ctx context.Context, st store.Store, onto *models.Ontology, w io.Writer) error {
	if err := st.Save(ctx, onto); err != nil {
		return err
	}
	fmt.Fprintf(w, "Pushed %s (run %s): %d classes, %d object properties, %d datatype properties\n",
		onto.BaseIRI, onto.RunID, onto.Stats.Classes, onto.Stats.ObjectProperties, onto.Stats.DataTypeProperties)
	return nil
}
