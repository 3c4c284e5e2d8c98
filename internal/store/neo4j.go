package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/ajitpratap0/ontology-owl/internal/models"
)

const (
	neo4jConnectTimeout = 10 * time.Second
	neo4jWriteTimeout   = 60 * time.Second
	neo4jCloseTimeout   = 5 * time.Second
)

func withTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, d)
}

// Neo4jStore implements Store on a Neo4j database.
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *slog.Logger
}

// NewNeo4jStore connects to uri and verifies connectivity.
func NewNeo4jStore(ctx context.Context, uri, username, password, database string, logger *slog.Logger) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver for %s: %w", uri, err)
	}

	verifyCtx, cancel := withTimeout(ctx, neo4jConnectTimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verifying neo4j connection at %s: %w", uri, err)
	}

	logger.Info("connected to neo4j", "uri", uri, "database", database)
	return &Neo4jStore{driver: driver, database: database, logger: logger}, nil
}

// Save writes onto in a single transaction.
func (s *Neo4jStore) Save(ctx context.Context, onto *models.Ontology) error {
	ctx, cancel := withTimeout(ctx, neo4jWriteTimeout)
	defer cancel()

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer func() { _ = session.Close(ctx) }()

	stmts := buildStatements(onto)
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for i, st := range stmts {
			res, err := tx.Run(ctx, st.Cypher, st.Params)
			if err != nil {
				return nil, fmt.Errorf("statement %d: %w", i, err)
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, fmt.Errorf("statement %d: %w", i, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("saving ontology %s: %w", onto.BaseIRI, err)
	}

	s.logger.Info("saved ontology to neo4j",
		"base_iri", onto.BaseIRI,
		"run_id", onto.RunID,
		"statements", len(stmts),
	)
	return nil
}

// Close releases the driver.
func (s *Neo4jStore) Close() error {
	ctx, cancel := withTimeout(context.Background(), neo4jCloseTimeout)
	defer cancel()
	return s.driver.Close(ctx)
}
