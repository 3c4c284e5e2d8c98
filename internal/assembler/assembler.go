// Package assembler orchestrates a conversion: every input document is
// ingested first, then link relations and icon records are resolved against
// the complete registry. The ordering is enforced by an explicit phase machine.
package assembler

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/ajitpratap0/ontology-owl/internal/apperrors"
	"github.com/ajitpratap0/ontology-owl/internal/formula"
	"github.com/ajitpratap0/ontology-owl/internal/ingest"
	"github.com/ajitpratap0/ontology-owl/internal/metrics"
	"github.com/ajitpratap0/ontology-owl/internal/models"
	"github.com/ajitpratap0/ontology-owl/internal/registry"
	"github.com/ajitpratap0/ontology-owl/internal/resolve"
	"github.com/ajitpratap0/ontology-owl/pkg/iri"
)

// Phase is a state of the conversion.
type Phase int

const (
	PhaseIngesting Phase = iota
	PhaseResolvingLinks
	PhaseResolvingIcons
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIngesting:
		return "ingesting"
	case PhaseResolvingLinks:
		return "resolving-links"
	case PhaseResolvingIcons:
		return "resolving-icons"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Options configures an Assembler.
type Options struct {
	// BaseIRI is the namespace of every generated identifier.
	BaseIRI string

	// Fs is used to read input files, check icon resources and write
	// extracted resources. Defaults to the OS filesystem.
	Fs afero.Fs

	// ResourceRoot is the directory icon paths are resolved against.
	ResourceRoot string

	// OutputDir receives files embedded in ontology resource documents.
	// Resources are not extracted when empty.
	OutputDir string

	// Strict makes every per-file failure during LoadDir fatal.
	Strict bool
}

// Assembler runs one conversion. It is not safe for concurrent use.
type Assembler struct {
	opts     Options
	mapper   iri.Mapper
	reg      *registry.Registry
	ingestor *ingest.Ingestor
	logger   *slog.Logger
	runID    string

	phase         Phase
	linkRelations []models.LinkRelation
	haveLinks     bool
	images        []models.ImageInfo
	haveImages    bool

	stats models.OntologyStats
}

// New creates an Assembler in the ingesting phase.
func New(opts Options, logger *slog.Logger) *Assembler {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	mapper := iri.NewMapper(opts.BaseIRI)
	reg := registry.New()
	return &Assembler{
		opts:     opts,
		mapper:   mapper,
		reg:      reg,
		ingestor: ingest.NewIngestor(reg, mapper, formula.NewComposer(), logger),
		logger:   logger,
		runID:    uuid.NewString(),
		phase:    PhaseIngesting,
	}
}

// Phase returns the current phase.
func (a *Assembler) Phase() Phase { return a.phase }

// RunID identifies this conversion in logs and output.
func (a *Assembler) RunID() string { return a.runID }

// Registry exposes the entity registry.
func (a *Assembler) Registry() *registry.Registry { return a.reg }

func (a *Assembler) expect(want Phase, op string) error {
	if a.phase != want {
		return fmt.Errorf("%w: %s requires phase %s, current phase is %s", apperrors.ErrPhaseOrder, op, want, a.phase)
	}
	return nil
}

// Ingest accepts one decoded document. Link-relation and image-info tables are
// buffered until their resolution phase.
func (a *Assembler) Ingest(doc models.Document) error {
	if err := a.expect(PhaseIngesting, "ingest"); err != nil {
		return err
	}

	before := a.reg.Stats()
	var err error
	switch d := doc.(type) {
	case models.ObjectTypeConfig:
		err = a.ingestor.ObjectType(d)
	case models.LinkTypeConfig:
		err = a.ingestor.LinkType(d)
	case models.PropertyTypeConfig:
		err = a.ingestor.PropertyType(d)
	case models.LinkRelations:
		a.linkRelations = append(a.linkRelations, d.Relations...)
		a.haveLinks = true
	case models.ImageInfos:
		a.images = append(a.images, d.Images...)
		a.haveImages = true
	case models.OntologyResourceConfig:
		err = a.extractResource(d)
	case models.IgnoredDocument:
		a.logger.Debug("skipping ignored document", "kind", d.Root)
	default:
		err = fmt.Errorf("%w: unsupported document %T", apperrors.ErrMalformedInput, doc)
	}
	if err != nil {
		return err
	}

	metrics.DocumentsIngested.WithLabelValues(string(doc.Kind())).Inc()
	countRegistered(before, a.reg.Stats())
	return nil
}

func countRegistered(before, after registry.Stats) {
	add := func(entity string, n int) {
		if n > 0 {
			metrics.EntitiesRegistered.WithLabelValues(entity).Add(float64(n))
		}
	}
	add("class", after.Classes-before.Classes)
	add("object_property", after.ObjectProperties-before.ObjectProperties)
	add("datatype_property", after.DataTypeProperties-before.DataTypeProperties)
	add("dependent_property", after.DependentProperties-before.DependentProperties)
}

// FinishIngestion closes the ingesting phase.
func (a *Assembler) FinishIngestion() error {
	if err := a.expect(PhaseIngesting, "finish ingestion"); err != nil {
		return err
	}
	a.phase = PhaseResolvingLinks
	s := a.reg.Stats()
	a.logger.Info("ingestion complete",
		"run_id", a.runID,
		"classes", s.Classes,
		"object_properties", s.ObjectProperties,
		"datatype_properties", s.DataTypeProperties,
		"link_relations", len(a.linkRelations),
		"images", len(a.images),
	)
	return nil
}

// ResolveLinks applies the buffered link relations. Without a link-relations
// table every domain and range stays empty.
func (a *Assembler) ResolveLinks() error {
	if err := a.expect(PhaseResolvingLinks, "resolve links"); err != nil {
		return err
	}
	if !a.haveLinks {
		a.logger.Warn("could not find link relations xml", "error", apperrors.ErrMissingOptionalInput)
	} else {
		r := resolve.NewLinkResolver(a.reg, a.mapper, a.logger)
		if err := r.Resolve(a.linkRelations); err != nil {
			return fmt.Errorf("resolving links: %w", err)
		}
		a.stats.LinkRelations = len(a.linkRelations)
	}
	a.linkRelations = nil
	a.phase = PhaseResolvingIcons
	return nil
}

// ResolveIcons backfills icon paths from the buffered image records.
func (a *Assembler) ResolveIcons() error {
	if err := a.expect(PhaseResolvingIcons, "resolve icons"); err != nil {
		return err
	}
	if !a.haveImages {
		a.logger.Warn("could not find image info xml", "error", apperrors.ErrMissingOptionalInput)
	} else {
		r := resolve.NewIconResolver(a.reg, a.opts.Fs, a.opts.ResourceRoot, a.logger)
		res, err := r.Resolve(a.images)
		if err != nil {
			return fmt.Errorf("resolving icons: %w", err)
		}
		a.stats.IconsBackfilled = res.Backfilled
		a.stats.UnclaimedIcons = res.Unclaimed
	}
	a.images = nil
	a.phase = PhaseDone
	return nil
}

// Ontology returns the resolved entity graph.
func (a *Assembler) Ontology() (*models.Ontology, error) {
	if err := a.expect(PhaseDone, "ontology"); err != nil {
		return nil, err
	}
	s := a.reg.Stats()
	stats := a.stats
	stats.Classes = s.Classes
	stats.ObjectProperties = s.ObjectProperties
	stats.DataTypeProperties = s.DataTypeProperties
	stats.DependentProperties = s.DependentProperties
	stats.PendingIcons = s.PendingIcons

	return &models.Ontology{
		BaseIRI:            a.mapper.Base(),
		RunID:              a.runID,
		Classes:            a.reg.Classes(),
		ObjectProperties:   a.reg.ObjectProperties(),
		DataTypeProperties: a.reg.DataTypeProperties(),
		Stats:              stats,
	}, nil
}

// Run completes ingestion and drives both resolution phases.
func (a *Assembler) Run() (*models.Ontology, error) {
	onto, err := a.run()
	if err != nil {
		metrics.Conversions.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.Conversions.WithLabelValues("success").Inc()
	return onto, nil
}

func (a *Assembler) run() (*models.Ontology, error) {
	if err := a.FinishIngestion(); err != nil {
		return nil, err
	}
	if err := a.ResolveLinks(); err != nil {
		return nil, err
	}
	if err := a.ResolveIcons(); err != nil {
		return nil, err
	}
	return a.Ontology()
}
