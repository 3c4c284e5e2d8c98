// Package ingest decodes input documents and turns object-type, link-type and
// property-type records into registry entities. Cross references between
// entities are left for the resolve package.
package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ajitpratap0/ontology-owl/internal/apperrors"
	"github.com/ajitpratap0/ontology-owl/internal/formula"
	"github.com/ajitpratap0/ontology-owl/internal/models"
	"github.com/ajitpratap0/ontology-owl/internal/registry"
	"github.com/ajitpratap0/ontology-owl/pkg/iri"
)

// errMissingURI is returned for a record without a uri.
var errMissingURI = errors.New("record has no uri")

// Ingestor creates entities in a Registry.
type Ingestor struct {
	reg      *registry.Registry
	mapper   iri.Mapper
	composer *formula.Composer
	logger   *slog.Logger
}

// NewIngestor creates a new Ingestor writing into reg.
func NewIngestor(reg *registry.Registry, mapper iri.Mapper, composer *formula.Composer, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		reg:      reg,
		mapper:   mapper,
		composer: composer,
		logger:   logger,
	}
}

// ObjectType registers the class described by cfg and queues its info icon
// for backfill.
func (in *Ingestor) ObjectType(cfg models.ObjectTypeConfig) error {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return fmt.Errorf("object type: %w", errMissingURI)
	}

	class := &models.Class{
		URI:     uri,
		IRI:     in.mapper.ToGlobalID(uri),
		Label:   cfg.DisplayName,
		Comment: cfg.Description,
	}

	// A class listed as its own parent is not a subclass of anything.
	if parent := strings.TrimSpace(cfg.ParentType); parent != "" && parent != uri {
		class.ParentIRI = in.mapper.ToGlobalID(parent)
	}

	if len(cfg.TitleArgs) > 0 {
		f := in.composer.Compose(formula.Options{Prefix: in.mapper.Prefix()}, cfg.TitleArgs)
		if strings.TrimSpace(f) != "" {
			class.TitleFormula = f
		}
	}

	if err := in.reg.AddClass(class); err != nil {
		return fmt.Errorf("object type %s: %w", uri, err)
	}

	if icon := strings.TrimSpace(cfg.Display.InfoIconURI); icon != "" {
		class.InfoIconURI = icon
		in.reg.AddPendingIcon(icon, uri)
	}

	in.logger.Debug("registered class", "uri", uri, "iri", class.IRI)
	return nil
}

// LinkType registers the object property described by cfg. An asymmetric link
// also registers its inverse under uri + models.InverseSuffix.
func (in *Ingestor) LinkType(cfg models.LinkTypeConfig) error {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return fmt.Errorf("link type: %w", errMissingURI)
	}
	if len(cfg.Asymmetric) > 1 {
		return fmt.Errorf("%w: link type %s: too many 'asymmetric' elements, expected 0 or 1, found %d",
			apperrors.ErrCardinalityViolation, uri, len(cfg.Asymmetric))
	}

	forward := &models.ObjectProperty{
		URI:   uri,
		IRI:   in.mapper.ToGlobalID(uri),
		Label: cfg.DisplayName,
	}

	var inverse *models.ObjectProperty
	if len(cfg.Asymmetric) == 1 {
		asym := cfg.Asymmetric[0]
		if l := asym.ParentToChild.DisplayName; l != "" {
			forward.Label = l
		}
		inverseLabel := forward.Label
		if l := asym.ChildToParent.DisplayName; l != "" {
			inverseLabel = l
		}

		inverseURI := uri + models.InverseSuffix
		inverse = &models.ObjectProperty{
			URI:        inverseURI,
			IRI:        in.mapper.ToGlobalID(inverseURI),
			Label:      inverseLabel,
			InverseURI: forward.URI,
			InverseIRI: forward.IRI,
		}
		forward.InverseURI = inverse.URI
		forward.InverseIRI = inverse.IRI

		// Check both names up front so a clash never leaves half a pair behind.
		if _, exists := in.reg.ObjectProperty(inverseURI); exists {
			return fmt.Errorf("link type %s: %w: object property %s", uri, apperrors.ErrDuplicateEntity, inverseURI)
		}
	}

	if err := in.reg.AddObjectProperty(forward); err != nil {
		return fmt.Errorf("link type %s: %w", uri, err)
	}
	if inverse != nil {
		if err := in.reg.AddObjectProperty(inverse); err != nil {
			return fmt.Errorf("link type %s: %w", uri, err)
		}
	}

	in.logger.Debug("registered object property", "uri", uri, "asymmetric", inverse != nil)
	return nil
}

// PropertyType registers the data-type property described by cfg together with
// one dependent property per declared component.
func (in *Ingestor) PropertyType(cfg models.PropertyTypeConfig) error {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return fmt.Errorf("property type: %w", errMissingURI)
	}

	propertyIRI := in.mapper.ToGlobalID(uri)
	prop := &models.DataTypeProperty{
		URI:            uri,
		IRI:            propertyIRI,
		Label:          cfg.Type.DisplayName,
		Range:          models.RangeForBaseType(cfg.Type.BaseType()),
		Comment:        cfg.Description,
		TextIndexHints: []string{models.TextIndexFullText},
	}

	if len(cfg.Type.Components) > 0 {
		if len(cfg.DisplayArgs) > 0 {
			f := in.composer.Compose(formula.Options{Prefix: propertyIRI + "/"}, cfg.DisplayArgs)
			if strings.TrimSpace(f) != "" {
				prop.DisplayFormula = f
			}
		}

		for _, comp := range cfg.Type.Components {
			compURI := strings.TrimSpace(comp.URI)
			prop.Dependents = append(prop.Dependents, &models.DataTypeProperty{
				URI:            uri + "/" + compURI,
				IRI:            propertyIRI + "/" + compURI,
				Label:          comp.DisplayName,
				Range:          models.RangeForBaseType(comp.Type.BaseType()),
				TextIndexHints: []string{models.TextIndexFullText},
			})
		}
	}

	for _, e := range cfg.Type.Enumeration {
		prop.PossibleValues = append(prop.PossibleValues, models.EnumEntry{Key: e.Key, Value: e.Value})
	}

	if err := in.reg.AddDataTypeProperty(prop); err != nil {
		return fmt.Errorf("property type %s: %w", uri, err)
	}

	in.logger.Debug("registered data type property", "uri", uri, "range", prop.Range, "dependents", len(prop.Dependents))
	return nil
}
