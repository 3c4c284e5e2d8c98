package store

import (
	"context"
	"sync"

	"github.com/ajitpratap0/ontology-owl/internal/models"
)

// MockStore is an in-memory implementation of Store for testing. It keeps the
// latest ontology per base IRI and the statements a graph store would run.
type MockStore struct {
	mu         sync.RWMutex
	ontologies map[string]*models.Ontology
	statements []statement
	saves      int
	closed     bool
	saveErr    error
}

// NewMockStore creates a new mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		ontologies: make(map[string]*models.Ontology),
	}
}

// Save records onto.
func (m *MockStore) Save(ctx context.Context, onto *models.Ontology) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.ontologies[onto.BaseIRI] = onto
	m.statements = append(m.statements, buildStatements(onto)...)
	m.saves++
	return nil
}

// FailWith makes every later Save return err. A nil err restores normal behavior.
func (m *MockStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Get returns the ontology last saved under baseIRI.
func (m *MockStore) Get(baseIRI string) (*models.Ontology, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	onto, ok := m.ontologies[baseIRI]
	if !ok {
		return nil, ErrNotFound
	}
	return onto, nil
}

// Saves returns how many times Save succeeded.
func (m *MockStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// Statements returns the number of graph statements generated so far.
func (m *MockStore) Statements() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.statements)
}

// Closed reports whether Close was called.
func (m *MockStore) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Close marks the store closed.
func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var (
	_ Store = (*MockStore)(nil)
	_ Store = (*Neo4jStore)(nil)
)
