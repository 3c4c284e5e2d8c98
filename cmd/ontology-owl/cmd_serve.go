package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ajitpratap0/ontology-owl/internal/api"
	"github.com/ajitpratap0/ontology-owl/internal/store"
)

func serveCmd() *cobra.Command {
	var (
		in    inputFlags
		graph bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Convert an export and serve it over the HTTP/JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			oc := cfg.Ontology
			in.apply(cmd, &oc)

			conv, err := convertOntology(cmd.Context(), afero.NewOsFs(), oc, "", logger)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}

			var st store.Store
			if graph {
				neo, err := newStore(cmd.Context(), logger)
				if err != nil {
					return fmt.Errorf("serve: connecting to neo4j: %w", err)
				}
				defer func() { _ = neo.Close() }()
				st = neo
			}

			srv := api.NewServer(conv.Ontology, st, logger, cfg.API.AuthToken)

			if cfg.API.AuthToken == "" {
				logger.Warn("HTTP API: auth is DISABLED; set ONTOLOGY_OWL_API_AUTH_TOKEN or api.auth_token for production use")
			}

			httpSrv := &http.Server{
				Addr:              cfg.API.ListenAddr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP API server starting", "addr", cfg.API.ListenAddr, "run_id", conv.Ontology.RunID)
				if listenErr := httpSrv.ListenAndServe(); listenErr != nil && listenErr != http.ErrServerClosed {
					errCh <- fmt.Errorf("serve: HTTP server: %w", listenErr)
				}
				close(errCh)
			}()

			select {
			case <-cmd.Context().Done():
				logger.Info("shutting down")
			case startErr := <-errCh:
				if startErr != nil {
					return startErr
				}
				return nil
			}

			const shutdownTimeout = 10 * time.Second
			if shutdownErr := api.Shutdown(httpSrv, shutdownTimeout); shutdownErr != nil {
				return fmt.Errorf("serve: graceful shutdown: %w", shutdownErr)
			}

			// Drain the errCh in case ListenAndServe returned after Shutdown.
			if startErr := <-errCh; startErr != nil {
				return startErr
			}

			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&graph, "graph", false, "connect to neo4j so POST /v1/push can write the ontology")
	return cmd
}
