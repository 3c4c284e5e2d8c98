package resolve

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/ontology-owl/internal/apperrors"
	"github.com/ajitpratap0/ontology-owl/internal/formula"
	"github.com/ajitpratap0/ontology-owl/internal/ingest"
	"github.com/ajitpratap0/ontology-owl/internal/metrics"
	"github.com/ajitpratap0/ontology-owl/internal/models"
	"github.com/ajitpratap0/ontology-owl/internal/registry"
	"github.com/ajitpratap0/ontology-owl/pkg/iri"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedRegistry ingests a small ontology: an asymmetric worksFor link, a
// symmetric knows link, and a composite name property.
func seedRegistry(t *testing.T) (*registry.Registry, iri.Mapper) {
	t.Helper()
	reg := registry.New()
	mapper := iri.NewMapper("base")
	in := ingest.NewIngestor(reg, mapper, formula.NewComposer(), newTestLogger())

	require.NoError(t, in.LinkType(models.LinkTypeConfig{
		URI:         "worksFor",
		DisplayName: "Works For",
		Asymmetric: []models.Asymmetric{{
			ParentToChild: models.LinkDirection{DisplayName: "Works For"},
			ChildToParent: models.LinkDirection{DisplayName: "Employs"},
		}},
	}))
	require.NoError(t, in.LinkType(models.LinkTypeConfig{URI: "knows", DisplayName: "Knows"}))
	require.NoError(t, in.PropertyType(models.PropertyTypeConfig{
		URI: "name",
		Type: models.TypeSpec{Components: []models.Component{
			{URI: "first"},
			{URI: "last"},
		}},
	}))
	return reg, mapper
}

func TestLinkResolver_ObjectPropertyMirroredOntoInverse(t *testing.T) {
	reg, mapper := seedRegistry(t)
	r := NewLinkResolver(reg, mapper, newTestLogger())

	require.NoError(t, r.Resolve([]models.LinkRelation{{URI1: "Company", URI2: "Person", LinkURI: "worksFor"}}))

	fwd, _ := reg.ObjectProperty("worksFor")
	inv, _ := reg.ObjectProperty("worksFor_inverse")
	assert.Equal(t, models.IRISet{"base#Person"}, fwd.Domain)
	assert.Equal(t, models.IRISet{"base#Company"}, fwd.Range)
	assert.Equal(t, models.IRISet{"base#Person"}, inv.Domain)
	assert.Equal(t, models.IRISet{"base#Company"}, inv.Range)
}

func TestLinkResolver_TrimsPaddedValues(t *testing.T) {
	reg, mapper := seedRegistry(t)
	r := NewLinkResolver(reg, mapper, newTestLogger())

	require.NoError(t, r.Resolve([]models.LinkRelation{
		{URI1: "\n  Company\n", URI2: " Person ", LinkURI: "\n      worksFor\n    "},
		{URI1: "\tPerson", URI2: "\n name \n", LinkURI: " com.palantir.link.Simple\n"},
	}))

	fwd, _ := reg.ObjectProperty("worksFor")
	assert.Equal(t, []string{"base#Person"}, []string(fwd.Domain))
	assert.Equal(t, []string{"base#Company"}, []string(fwd.Range))

	name, _ := reg.DataTypeProperty("name")
	assert.Equal(t, []string{"base#Person"}, []string(name.Domain))
}

func TestLinkResolver_UnresolvedReportsTrimmedValues(t *testing.T) {
	reg, mapper := seedRegistry(t)
	r := NewLinkResolver(reg, mapper, newTestLogger())

	err := r.Resolve([]models.LinkRelation{{URI1: " A ", URI2: "\nB", LinkURI: "\n missing \n"}})

	var unresolved *apperrors.UnresolvedReferenceError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, apperrors.UnresolvedReferenceError{LinkURI: "missing", URI1: "A", URI2: "B"}, *unresolved)
}

func TestLinkResolver_SymmetricHasNoInverse(t *testing.T) {
	reg, mapper := seedRegistry(t)
	r := NewLinkResolver(reg, mapper, newTestLogger())

	require.NoError(t, r.Resolve([]models.LinkRelation{
		{URI1: "Person", URI2: "Person", LinkURI: "knows"},
		{URI1: "Org", URI2: "Person", LinkURI: "knows"},
	}))

	p, _ := reg.ObjectProperty("knows")
	assert.Equal(t, models.IRISet{"base#Person"}, p.Domain)
	assert.Equal(t, models.IRISet{"base#Person", "base#Org"}, p.Range)
	_, ok := reg.ObjectProperty("knows_inverse")
	assert.False(t, ok)
}

func TestLinkResolver_SimpleLinkAddsDomainToPropertyAndDependents(t *testing.T) {
	reg, mapper := seedRegistry(t)
	r := NewLinkResolver(reg, mapper, newTestLogger())

	require.NoError(t, r.Resolve([]models.LinkRelation{
		{URI1: "Person", URI2: "name", LinkURI: SimpleLinkURI},
		{URI1: "Company", URI2: "name", LinkURI: SimpleLinkURI},
	}))

	p, _ := reg.DataTypeProperty("name")
	want := models.IRISet{"base#Person", "base#Company"}
	assert.Equal(t, want, p.Domain)
	for _, dep := range p.Dependents {
		assert.Equal(t, want, dep.Domain, dep.IRI)
	}
}

func TestLinkResolver_SimpleLinkWinsOverCollidingObjectProperty(t *testing.T) {
	reg, mapper := seedRegistry(t)
	require.NoError(t, reg.AddObjectProperty(&models.ObjectProperty{URI: SimpleLinkURI, IRI: mapper.ToGlobalID(SimpleLinkURI)}))
	r := NewLinkResolver(reg, mapper, newTestLogger())

	require.NoError(t, r.Resolve([]models.LinkRelation{{URI1: "Person", URI2: "name", LinkURI: SimpleLinkURI}}))

	collide, _ := reg.ObjectProperty(SimpleLinkURI)
	assert.Empty(t, collide.Domain)
	assert.Empty(t, collide.Range)
	p, _ := reg.DataTypeProperty("name")
	assert.Equal(t, models.IRISet{"base#Person"}, p.Domain)
}

func TestLinkResolver_SimpleLinkFallsBackToObjectProperty(t *testing.T) {
	reg, mapper := seedRegistry(t)
	require.NoError(t, reg.AddObjectProperty(&models.ObjectProperty{URI: SimpleLinkURI, IRI: mapper.ToGlobalID(SimpleLinkURI)}))
	r := NewLinkResolver(reg, mapper, newTestLogger())

	require.NoError(t, r.Resolve([]models.LinkRelation{{URI1: "A", URI2: "notAProperty", LinkURI: SimpleLinkURI}}))

	p, _ := reg.ObjectProperty(SimpleLinkURI)
	assert.Equal(t, models.IRISet{"base#notAProperty"}, p.Domain)
	assert.Equal(t, models.IRISet{"base#A"}, p.Range)
}

func TestLinkResolver_UnresolvedFailsWithAllValues(t *testing.T) {
	reg, mapper := seedRegistry(t)
	r := NewLinkResolver(reg, mapper, newTestLogger())

	err := r.Resolve([]models.LinkRelation{
		{URI1: "Company", URI2: "Person", LinkURI: "worksFor"},
		{URI1: "X", URI2: "Y", LinkURI: "missingLink"},
		{URI1: "Org", URI2: "Person", LinkURI: "worksFor"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnresolvedReference))
	var ure *apperrors.UnresolvedReferenceError
	require.True(t, errors.As(err, &ure))
	assert.Equal(t, apperrors.UnresolvedReferenceError{LinkURI: "missingLink", URI1: "X", URI2: "Y"}, *ure)

	fwd, _ := reg.ObjectProperty("worksFor")
	assert.Equal(t, models.IRISet{"base#Company"}, fwd.Range, "processing stops at the failing record")
}

func TestLinkResolver_SimpleLinkWithUnknownPropertyAndNoFallback(t *testing.T) {
	reg, mapper := seedRegistry(t)
	r := NewLinkResolver(reg, mapper, newTestLogger())

	err := r.Resolve([]models.LinkRelation{{URI1: "Person", URI2: "ghost", LinkURI: SimpleLinkURI}})

	assert.True(t, errors.Is(err, apperrors.ErrUnresolvedReference))
}

func TestLinkResolver_CountsResolvedRelations(t *testing.T) {
	reg, mapper := seedRegistry(t)
	r := NewLinkResolver(reg, mapper, newTestLogger())
	before := testutil.ToFloat64(metrics.LinkRelationsResolved)

	require.NoError(t, r.Resolve([]models.LinkRelation{
		{URI1: "A", URI2: "B", LinkURI: "knows"},
		{URI1: "A", URI2: "name", LinkURI: SimpleLinkURI},
	}))

	assert.InDelta(t, before+2, testutil.ToFloat64(metrics.LinkRelationsResolved), 0.001)
}
