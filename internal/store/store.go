// Package store persists converted ontologies into a property graph so the
// class hierarchy and link structure can be queried after conversion.
package store

import (
	"context"
	"errors"

	"github.com/ajitpratap0/ontology-owl/internal/models"
)

// ErrNotFound is returned by Get when no ontology was saved under the base IRI.
var ErrNotFound = errors.New("ontology not found")

// Store defines the interface for ontology persistence.
type Store interface {
	// Save writes every entity and relationship of onto. Saving the same
	// ontology twice leaves the graph unchanged.
	Save(ctx context.Context, onto *models.Ontology) error

	// Close cleans up resources.
	Close() error
}

// Node labels and relationship types written to the graph.
const (
	LabelOntology         = "Ontology"
	LabelClass            = "OwlClass"
	LabelObjectProperty   = "ObjectProperty"
	LabelDatatypeProperty = "DatatypeProperty"

	RelSubclassOf = "SUBCLASS_OF"
	RelInverseOf  = "INVERSE_OF"
	RelDomain     = "DOMAIN"
	RelRange      = "RANGE"
	RelDependsOn  = "DEPENDS_ON"
	RelDefines    = "DEFINES"
)
