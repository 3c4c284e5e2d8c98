// Package resolve runs the second phase of a conversion: link relations assign
// domain and range to registered properties, and image records backfill icon
// paths into registered classes.
package resolve

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ajitpratap0/ontology-owl/internal/apperrors"
	"github.com/ajitpratap0/ontology-owl/internal/metrics"
	"github.com/ajitpratap0/ontology-owl/internal/models"
	"github.com/ajitpratap0/ontology-owl/internal/registry"
	"github.com/ajitpratap0/ontology-owl/pkg/iri"
)

// SimpleLinkURI marks a link relation that attaches a data-type property to a class.
const SimpleLinkURI = "com.palantir.link.Simple"

// LinkResolver assigns domain and range from link relations.
type LinkResolver struct {
	reg    *registry.Registry
	mapper iri.Mapper
	logger *slog.Logger
}

// NewLinkResolver creates a LinkResolver over reg.
func NewLinkResolver(reg *registry.Registry, mapper iri.Mapper, logger *slog.Logger) *LinkResolver {
	return &LinkResolver{reg: reg, mapper: mapper, logger: logger}
}

// Resolve applies every relation in order and stops at the first one that
// matches no registered property.
func (r *LinkResolver) Resolve(relations []models.LinkRelation) error {
	for i := range relations {
		if err := r.resolveOne(relations[i]); err != nil {
			return fmt.Errorf("link relation %d: %w", i, err)
		}
		metrics.Inc(metrics.LinkRelationsResolved)
	}
	return nil
}

func (r *LinkResolver) resolveOne(rel models.LinkRelation) error {
	rel.URI1 = strings.TrimSpace(rel.URI1)
	rel.URI2 = strings.TrimSpace(rel.URI2)
	rel.LinkURI = strings.TrimSpace(rel.LinkURI)
	r.logger.Debug("resolving link relation", "uri1", rel.URI1, "uri2", rel.URI2, "link", rel.LinkURI)

	// The reserved marker wins over an object property with the same URI.
	if rel.LinkURI == SimpleLinkURI {
		if prop, ok := r.reg.DataTypeProperty(rel.URI2); ok {
			prop.AddDomain(r.mapper.ToGlobalID(rel.URI1))
			return nil
		}
	}

	prop, ok := r.reg.ObjectProperty(rel.LinkURI)
	if !ok {
		return &apperrors.UnresolvedReferenceError{LinkURI: rel.LinkURI, URI1: rel.URI1, URI2: rel.URI2}
	}

	domain := r.mapper.ToGlobalID(rel.URI2)
	rng := r.mapper.ToGlobalID(rel.URI1)
	prop.Domain.Add(domain)
	prop.Range.Add(rng)

	if prop.InverseURI != "" {
		if inverse, found := r.reg.ObjectProperty(prop.InverseURI); found {
			inverse.Domain.Add(domain)
			inverse.Range.Add(rng)
		}
	}
	return nil
}
