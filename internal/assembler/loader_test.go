package assembler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/ontology-owl/internal/apperrors"
)

func writeFixture(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(body), 0o644))
	}
}

func exportFixture() map[string]string {
	return map[string]string{
		"/export/ontology/objects/person.xml": `<pt_object_type_config>
  <uri>Person</uri><displayName>Person</displayName>
  <display><infoIconUri>icon.person</infoIconUri></display>
</pt_object_type_config>`,
		"/export/ontology/objects/company.XML": `<pt_object_type_config><uri>Company</uri><displayName>Company</displayName></pt_object_type_config>`,
		"/export/ontology/links/worksFor.xml": `<link_type_config>
  <uri>worksFor</uri><displayName>Works For</displayName>
  <asymmetric>
    <parentToChild><displayName>Works For</displayName></parentToChild>
    <childToParent><displayName>Employs</displayName></childToParent>
  </asymmetric>
</link_type_config>`,
		"/export/ontology/properties/name.xml": `<property_type_config><uri>name</uri><type><displayName>Name</displayName></type></property_type_config>`,
		"/export/ontology/link_relations.xml": `<link_relations>
  <link_relation_config><uri1>Company</uri1><uri2>Person</uri2><linkUri>worksFor</linkUri></link_relation_config>
  <link_relation_config><uri1>Person</uri1><uri2>name</uri2><linkUri>com.palantir.link.Simple</linkUri></link_relation_config>
</link_relations>`,
		"/export/ontology/image_infos.xml": `<image_infos><image_info_config><uri>icon.person</uri><path>/icons/person.png</path></image_info_config></image_infos>`,
		"/export/ontology/export_info.xml": `<ontologyExportInfo><version>1</version></ontologyExportInfo>`,
		"/export/ontology/resource.xml":    `<ontology_resource_config><path>/icons/person.png</path><contents>aGVs bG8=</contents></ontology_resource_config>`,
		"/export/ontology/README.txt":      `not xml`,
		"/export/icons/person.png":         `png`,
	}
}

func TestLoadDir_EndToEnd(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, exportFixture())
	a := newTestAssembler(t, fs)

	res, err := a.LoadDir(context.Background(), "/export/ontology")
	require.NoError(t, err)
	assert.Equal(t, LoadResult{Files: 9, Ingested: 8, Ignored: 1, Failed: 0}, res)

	onto, err := a.Run()
	require.NoError(t, err)

	require.Len(t, onto.Classes, 2)
	person, ok := onto.ClassByIRI("base#Person")
	require.True(t, ok)
	assert.Equal(t, []string{"icons/person.png"}, person.GlyphIconFileNames)

	fwd, ok := onto.ObjectPropertyByIRI("base#worksFor")
	require.True(t, ok)
	assert.Equal(t, []string{"base#Person"}, []string(fwd.Domain))

	name, ok := onto.DataTypePropertyByIRI("base#name")
	require.True(t, ok)
	assert.Equal(t, []string{"base#Person"}, []string(name.Domain))

	extracted, err := afero.ReadFile(fs, "/out/icons/person.png")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(extracted))
}

func TestLoadDir_BadFileIsSkipped(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, map[string]string{
		"/in/a.xml": `<pt_object_type_config><uri>A</uri></pt_object_type_config>`,
		"/in/b.xml": `<pt_object_type_config><uri>B</pt_object_type_config>`,
		"/in/c.xml": `<pt_object_type_config><uri>A</uri></pt_object_type_config>`,
		"/in/d.xml": `<pt_object_type_config><uri>D</uri></pt_object_type_config>`,
	})
	a := newTestAssembler(t, fs)

	res, err := a.LoadDir(context.Background(), "/in")

	require.NoError(t, err)
	assert.Equal(t, LoadResult{Files: 4, Ingested: 2, Failed: 2}, res)
	assert.Len(t, a.Registry().Classes(), 2)
}

func TestLoadDir_StrictStopsAtFirstFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, map[string]string{
		"/in/a.xml": `<pt_object_type_config><uri>A</pt_object_type_config>`,
	})
	a := New(Options{BaseIRI: "base", Fs: fs, Strict: true}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := a.LoadDir(context.Background(), "/in")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "/in/a.xml")
}

func TestLoadDir_UnknownKindAborts(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, map[string]string{
		"/in/a.xml": `<mystery_config/>`,
		"/in/b.xml": `<pt_object_type_config><uri>B</uri></pt_object_type_config>`,
	})
	a := newTestAssembler(t, fs)

	_, err := a.LoadDir(context.Background(), "/in")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMalformedInput))
	assert.Empty(t, a.Registry().Classes())
}

func TestLoadDir_CardinalityViolationAborts(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, map[string]string{
		"/in/l.xml": `<link_type_config><uri>x</uri><asymmetric/><asymmetric/></link_type_config>`,
	})
	a := newTestAssembler(t, fs)

	_, err := a.LoadDir(context.Background(), "/in")

	assert.True(t, errors.Is(err, apperrors.ErrCardinalityViolation))
}

func TestLoadDir_Cancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, map[string]string{"/in/a.xml": `<pt_object_type_config><uri>A</uri></pt_object_type_config>`})
	a := newTestAssembler(t, fs)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.LoadDir(ctx, "/in")

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	a := newTestAssembler(t, afero.NewMemMapFs())
	_, err := a.LoadDir(context.Background(), "/nowhere")
	assert.Error(t, err)
}

func TestLoadDir_PrettyPrintedIdentifiers(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, map[string]string{
		"/export/ontology/person.xml": `<pt_object_type_config>
  <uri>
    Person
  </uri>
  <displayName>Person</displayName>
  <display>
    <infoIconUri>
      icon.person
    </infoIconUri>
  </display>
</pt_object_type_config>`,
		"/export/ontology/works_for.xml": `<link_type_config>
  <uri>
    worksFor
  </uri>
  <displayName>Works For</displayName>
</link_type_config>`,
		"/export/ontology/relations.xml": `<link_relations>
  <link_relation_config>
    <uri1>
      Company
    </uri1>
    <uri2>
      Person
    </uri2>
    <linkUri>
      worksFor
    </linkUri>
  </link_relation_config>
</link_relations>`,
		"/export/ontology/images.xml": `<image_infos>
  <image_info_config>
    <uri>
      icon.person
    </uri>
    <path>
      /icons/person.png
    </path>
  </image_info_config>
</image_infos>`,
		"/export/icons/person.png": `png`,
	})
	a := newTestAssembler(t, fs)

	_, err := a.LoadDir(context.Background(), "/export/ontology")
	require.NoError(t, err)
	onto, err := a.Run()
	require.NoError(t, err)

	prop, ok := onto.ObjectPropertyByIRI("base#worksFor")
	require.True(t, ok)
	assert.Equal(t, []string{"base#Person"}, []string(prop.Domain))
	assert.Equal(t, []string{"base#Company"}, []string(prop.Range))

	person, ok := onto.ClassByIRI("base#Person")
	require.True(t, ok)
	assert.Equal(t, []string{"icons/person.png"}, person.GlyphIconFileNames)
}

func TestLoadDir_AfterFinishIngestionFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, exportFixture())
	a := newTestAssembler(t, fs)
	require.NoError(t, a.FinishIngestion())

	res, err := a.LoadDir(context.Background(), "/export/ontology")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPhaseOrder))
	assert.Equal(t, LoadResult{}, res)
	assert.Equal(t, PhaseResolvingLinks, a.Phase())
}

func TestExtractResource_RejectsEscapingPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFixture(t, fs, map[string]string{
		"/in/r.xml": `<ontology_resource_config><path>../../etc/passwd</path><contents>eA==</contents></ontology_resource_config>`,
	})
	a := newTestAssembler(t, fs)

	err := a.LoadFile("/in/r.xml")

	require.Error(t, err)
	exists, _ := afero.Exists(fs, "/etc/passwd")
	assert.False(t, exists)
}
