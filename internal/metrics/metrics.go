// Package metrics provides conversion counters backed by a dedicated
// Prometheus registry. The serve command exposes Registry on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every counter in this package.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Conversion counters.
var (
	DocumentsIngested = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "ontology_owl_documents_ingested_total",
		Help: "Input documents accepted, by document kind.",
	}, []string{"kind"})
	DocumentsSkipped = factory.NewCounter(prometheus.CounterOpts{
		Name: "ontology_owl_documents_skipped_total",
		Help: "Input files logged and skipped during bulk ingestion.",
	})
	EntitiesRegistered = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "ontology_owl_entities_registered_total",
		Help: "Entities created in the registry, by entity kind.",
	}, []string{"entity"})
	LinkRelationsResolved = factory.NewCounter(prometheus.CounterOpts{
		Name: "ontology_owl_link_relations_resolved_total",
		Help: "Link relations applied to registered properties.",
	})
	IconsBackfilled = factory.NewCounter(prometheus.CounterOpts{
		Name: "ontology_owl_icons_backfilled_total",
		Help: "Icon paths appended to classes.",
	})
	Conversions = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "ontology_owl_conversions_total",
		Help: "Completed conversion runs, by outcome.",
	}, []string{"outcome"})
)

// Inc increments the given counter by 1.
func Inc(counter prometheus.Counter) { counter.Inc() }
