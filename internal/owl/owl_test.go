package owl

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/ontology-owl/internal/models"
)

func sampleOntology() *models.Ontology {
	street := &models.DataTypeProperty{
		URI: "address/street", IRI: "base#address/street", Label: "Street",
		Range: models.RangeString, TextIndexHints: []string{models.TextIndexFullText},
		Domain: models.IRISet{"base#Person"},
	}
	return &models.Ontology{
		BaseIRI: "base",
		Classes: []*models.Class{
			{URI: "Thing", IRI: "base#Thing", Label: "Thing"},
			{
				URI: "Person", IRI: "base#Person", Label: "Person & Co", ParentIRI: "base#Thing",
				Comment:            "A human",
				TitleFormula:       "prop('base#name') + ' ' + prop('base#nick')",
				GlyphIconFileNames: []string{"icons/person.png"},
			},
		},
		ObjectProperties: []*models.ObjectProperty{
			{
				URI: "worksFor", IRI: "base#worksFor", Label: "Works For",
				InverseURI: "worksFor_inverse", InverseIRI: "base#worksFor_inverse",
				Domain: models.IRISet{"base#Person"}, Range: models.IRISet{"base#Company"},
			},
			{
				URI: "worksFor_inverse", IRI: "base#worksFor_inverse", Label: "Employs",
				InverseURI: "worksFor", InverseIRI: "base#worksFor",
				Domain: models.IRISet{"base#Person"}, Range: models.IRISet{"base#Company"},
			},
		},
		DataTypeProperties: []*models.DataTypeProperty{
			{
				URI: "address", IRI: "base#address", Label: "Address",
				Range: models.RangeString, TextIndexHints: []string{models.TextIndexFullText},
				DisplayFormula: "prop('base#address/street')",
				Dependents:     []*models.DataTypeProperty{street},
				Domain:         models.IRISet{"base#Person"},
			},
			{
				URI: "status", IRI: "base#status", Label: "Status",
				Range: models.RangeNumeric, TextIndexHints: []string{models.TextIndexFullText},
				PossibleValues: []models.EnumEntry{{Key: "z", Value: "Zulu"}, {Key: "a", Value: "Alpha"}},
			},
		},
	}
}

func render(t *testing.T, f Format) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleOntology(), f))
	return buf.String()
}

func TestRDFXML_IsWellFormed(t *testing.T) {
	out := render(t, FormatRDFXML)

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
}

func TestRDFXML_Header(t *testing.T) {
	out := render(t, FormatRDFXML)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`))
	assert.Contains(t, out, `xmlns:lumify="http://lumify.io#"`)
	assert.Contains(t, out, `xmlns:owl="http://www.w3.org/2002/07/owl#"`)
	assert.Contains(t, out, "  <owl:Ontology rdf:about=\"base\">\n    <owl:imports rdf:resource=\"http://lumify.io\"/>\n  </owl:Ontology>")
}

func TestRDFXML_Class(t *testing.T) {
	out := render(t, FormatRDFXML)

	assert.Contains(t, out, `<owl:Class rdf:about="base#Person">`)
	assert.Contains(t, out, `<rdfs:label xml:lang="en">Person &amp; Co</rdfs:label>`)
	assert.Contains(t, out, `<rdfs:subClassOf rdf:resource="base#Thing"/>`)
	assert.Contains(t, out, `<rdfs:comment>A human</rdfs:comment>`)
	assert.Contains(t, out, "<lumify:titleFormula><![CDATA[\n      prop('base#name') + ' ' + prop('base#nick')\n    ]]></lumify:titleFormula>")
	assert.Contains(t, out, `<lumify:glyphIconFileName>icons/person.png</lumify:glyphIconFileName>`)

	thing := out[strings.Index(out, `<owl:Class rdf:about="base#Thing">`):]
	thing = thing[:strings.Index(thing, "</owl:Class>")]
	assert.NotContains(t, thing, "subClassOf")
	assert.NotContains(t, thing, "titleFormula")
}

func TestRDFXML_ObjectProperty(t *testing.T) {
	out := render(t, FormatRDFXML)

	assert.Contains(t, out, "<owl:ObjectProperty rdf:about=\"base#worksFor\">\n"+
		"    <rdfs:label xml:lang=\"en\">Works For</rdfs:label>\n"+
		"    <owl:inverseOf rdf:resource=\"base#worksFor_inverse\"/>\n"+
		"    <rdfs:domain rdf:resource=\"base#Person\"/>\n"+
		"    <rdfs:range rdf:resource=\"base#Company\"/>\n"+
		"  </owl:ObjectProperty>")
	assert.Contains(t, out, `<owl:inverseOf rdf:resource="base#worksFor"/>`)
}

func TestRDFXML_DatatypeProperty(t *testing.T) {
	out := render(t, FormatRDFXML)

	assert.Contains(t, out, `<lumify:textIndexHints>FULL_TEXT</lumify:textIndexHints>`)
	assert.Contains(t, out, `<rdfs:range rdf:resource="http://www.w3.org/2001/XMLSchema#double"/>`)
	assert.Contains(t, out, `<lumify:dependentPropertyIri>base#address/street</lumify:dependentPropertyIri>`)
	assert.Contains(t, out, "<lumify:displayFormula><![CDATA[\n      prop('base#address/street')\n    ]]></lumify:displayFormula>")

	parent := strings.Index(out, `<owl:DatatypeProperty rdf:about="base#address">`)
	dependent := strings.Index(out, `<owl:DatatypeProperty rdf:about="base#address/street">`)
	status := strings.Index(out, `<owl:DatatypeProperty rdf:about="base#status">`)
	require.True(t, parent >= 0 && dependent >= 0 && status >= 0)
	assert.Less(t, parent, dependent)
	assert.Less(t, dependent, status)
}

func TestRDFXML_PossibleValuesKeepDeclarationOrder(t *testing.T) {
	out := render(t, FormatRDFXML)

	assert.Contains(t, out, "<lumify:possibleValues>\n      {\n")
	z := strings.Index(out, `"z": "Zulu"`)
	a := strings.Index(out, `"a": "Alpha"`)
	require.True(t, z >= 0 && a >= 0)
	assert.Less(t, z, a)
}

func TestTurtle(t *testing.T) {
	out := render(t, FormatTurtle)

	assert.True(t, strings.HasPrefix(out, "@prefix lumify: <http://lumify.io#> .\n@prefix owl:"))
	assert.Contains(t, out, "<base> a owl:Ontology ;\n    owl:imports <http://lumify.io> .")
	assert.Contains(t, out, `rdfs:label "Person & Co"@en`)
	assert.Contains(t, out, "rdfs:subClassOf <base#Thing>")
	assert.Contains(t, out, "<base#worksFor> a owl:ObjectProperty ;")
	assert.Contains(t, out, "owl:inverseOf <base#worksFor_inverse>")
	assert.Contains(t, out, "rdfs:range xsd:double")
	assert.Contains(t, out, `lumify:titleFormula "prop('base#name') + ' ' + prop('base#nick')"`)
	assert.Contains(t, out, `lumify:possibleValues "{\n  \"z\": \"Zulu\",\n  \"a\": \"Alpha\"\n}"`)
}

func TestIRIRef(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"base#Person", "<base#Person>"},
		{"base#Data Set", `<base#Data\u0020Set>`},
		{`base#a>b"c`, `<base#a\u003Eb\u0022c>`},
		{"base#{x}|^`\\", `<base#\u007Bx\u007D\u007C\u005E\u0060\u005C>`},
		{"base#line\nbreak", `<base#line\u000Abreak>`},
		{"base#café", "<base#café>"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, iriRef(tt.in))
		})
	}
}

func TestTurtle_EscapesIdentifiers(t *testing.T) {
	onto := &models.Ontology{
		BaseIRI: "base",
		Classes: []*models.Class{{URI: "Data Set", IRI: "base#Data Set", Label: "Data Set", ParentIRI: "base#<root>"}},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, onto, FormatTurtle))
	out := buf.String()

	assert.Contains(t, out, `<base#Data\u0020Set> a owl:Class ;`)
	assert.Contains(t, out, `rdfs:subClassOf <base#\u003Croot\u003E>`)
	assert.NotContains(t, out, "<base#Data Set>")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatRDFXML, false},
		{"rdfxml", FormatRDFXML, false},
		{"OWL", FormatRDFXML, false},
		{"ttl", FormatTurtle, false},
		{"turtle", FormatTurtle, false},
		{"jsonld", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatInfo(t *testing.T) {
	info, ok := FormatRDFXML.Info()
	require.True(t, ok)
	assert.Equal(t, "palantir.owl", info.DefaultFile)

	_, ok = Format("nt").Info()
	assert.False(t, ok)
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, sampleOntology(), Format("nt")))
}
