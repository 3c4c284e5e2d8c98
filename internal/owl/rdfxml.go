package owl

import (
	"fmt"
	"strings"

	"github.com/ajitpratap0/ontology-owl/internal/models"
	"github.com/ajitpratap0/ontology-owl/pkg/xmlutil"
)

const (
	childIndent = "    "
	blockIndent = "      "
)

// rdfWriter assembles an RDF/XML document with two-space indentation.
type rdfWriter struct {
	sb strings.Builder
}

func (w *rdfWriter) line(depth int, s string) {
	w.sb.WriteString(strings.Repeat("  ", depth))
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

func (w *rdfWriter) open(tag, about string) {
	w.line(1, fmt.Sprintf(`<%s rdf:about="%s">`, tag, xmlutil.Escape(about)))
}

func (w *rdfWriter) close(tag string) {
	w.line(1, "</"+tag+">")
}

func (w *rdfWriter) label(s string) {
	w.line(2, `<rdfs:label xml:lang="en">`+xmlutil.EscapeText(s)+`</rdfs:label>`)
}

func (w *rdfWriter) text(tag, s string) {
	w.line(2, "<"+tag+">"+xmlutil.EscapeText(s)+"</"+tag+">")
}

func (w *rdfWriter) resource(tag, iri string) {
	w.line(2, fmt.Sprintf(`<%s rdf:resource="%s"/>`, tag, xmlutil.Escape(iri)))
}

// block writes a multi-line value on its own indented lines, closing tag
// aligned with the element.
func block(s string) string {
	return "\n" + xmlutil.Indent(s, blockIndent) + "\n" + childIndent
}

func (w *rdfWriter) cdata(tag, s string) {
	w.line(2, "<"+tag+">"+xmlutil.CDATA(block(s))+"</"+tag+">")
}

func toRDFXML(onto *models.Ontology) (string, error) {
	w := &rdfWriter{}
	w.sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n")
	w.line(0, fmt.Sprintf(`<rdf:RDF xmlns:lumify="%s" xmlns:owl="%s" xmlns:rdf="%s" xmlns:rdfs="%s">`,
		NamespaceLumify, NamespaceOWL, NamespaceRDF, NamespaceRDFS))

	w.open("owl:Ontology", onto.BaseIRI)
	w.resource("owl:imports", ImportIRI)
	w.close("owl:Ontology")

	for _, c := range onto.Classes {
		w.open("owl:Class", c.IRI)
		w.label(c.Label)
		if c.ParentIRI != "" {
			w.resource("rdfs:subClassOf", c.ParentIRI)
		}
		if c.Comment != "" {
			w.text("rdfs:comment", c.Comment)
		}
		if strings.TrimSpace(c.TitleFormula) != "" {
			w.cdata("lumify:titleFormula", c.TitleFormula)
		}
		for _, icon := range c.GlyphIconFileNames {
			w.text("lumify:glyphIconFileName", icon)
		}
		w.close("owl:Class")
	}

	for _, p := range onto.ObjectProperties {
		w.open("owl:ObjectProperty", p.IRI)
		w.label(p.Label)
		if p.InverseIRI != "" {
			w.resource("owl:inverseOf", p.InverseIRI)
		}
		for _, d := range p.Domain {
			w.resource("rdfs:domain", d)
		}
		for _, r := range p.Range {
			w.resource("rdfs:range", r)
		}
		w.close("owl:ObjectProperty")
	}

	for _, p := range dataTypeProperties(onto) {
		w.open("owl:DatatypeProperty", p.IRI)
		w.label(p.Label)
		for _, hint := range p.TextIndexHints {
			w.text("lumify:textIndexHints", hint)
		}
		w.resource("rdfs:range", p.Range.XSD())
		if p.Comment != "" {
			w.text("rdfs:comment", p.Comment)
		}
		if strings.TrimSpace(p.DisplayFormula) != "" {
			w.cdata("lumify:displayFormula", p.DisplayFormula)
		}
		for _, dep := range dependentIRIs(p) {
			w.text("lumify:dependentPropertyIri", dep)
		}
		if len(p.PossibleValues) > 0 {
			values, err := possibleValuesJSON(p.PossibleValues)
			if err != nil {
				return "", fmt.Errorf("property %s: %w", p.IRI, err)
			}
			w.line(2, "<lumify:possibleValues>"+xmlutil.EscapeText(block(values))+"</lumify:possibleValues>")
		}
		for _, d := range p.Domain {
			w.resource("rdfs:domain", d)
		}
		w.close("owl:DatatypeProperty")
	}

	w.line(0, "</rdf:RDF>")
	return w.sb.String(), nil
}
