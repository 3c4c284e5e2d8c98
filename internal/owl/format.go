// Package owl renders a resolved ontology as OWL. RDF/XML is the primary
// output; Turtle renders the same graph for tools that prefer it.
package owl

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ajitpratap0/ontology-owl/internal/models"
)

// Format specifies the output serialization.
type Format string

const (
	// FormatRDFXML produces OWL in RDF/XML.
	FormatRDFXML Format = "rdfxml"

	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"
)

// FormatInfo provides metadata about an output format.
type FormatInfo struct {
	Name        Format
	MIMEType    string
	Extension   string
	DefaultFile string
}

// Formats lists every supported format.
var Formats = map[Format]FormatInfo{
	FormatRDFXML: {
		Name:        FormatRDFXML,
		MIMEType:    "application/rdf+xml",
		Extension:   ".owl",
		DefaultFile: "palantir.owl",
	},
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		DefaultFile: "palantir.ttl",
	},
}

// ParseFormat resolves a format name. The empty string selects RDF/XML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rdfxml", "rdf/xml", "owl", "xml":
		return FormatRDFXML, nil
	case "turtle", "ttl":
		return FormatTurtle, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// Info returns the metadata of f.
func (f Format) Info() (FormatInfo, bool) {
	info, ok := Formats[f]
	return info, ok
}

// Namespace IRIs used in the output.
const (
	NamespaceRDF    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceRDFS   = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceOWL    = "http://www.w3.org/2002/07/owl#"
	NamespaceXSD    = "http://www.w3.org/2001/XMLSchema#"
	NamespaceLumify = "http://lumify.io#"

	// ImportIRI is the ontology every output imports.
	ImportIRI = "http://lumify.io"
)

// Write serializes onto to w in the given format.
func Write(w io.Writer, onto *models.Ontology, f Format) error {
	var out string
	switch f {
	case FormatRDFXML, "":
		s, err := toRDFXML(onto)
		if err != nil {
			return err
		}
		out = s
	case FormatTurtle:
		s, err := toTurtle(onto)
		if err != nil {
			return err
		}
		out = s
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("writing %s output: %w", f, err)
	}
	return nil
}

// possibleValuesJSON renders enumeration entries as an indented JSON object,
// keys in declaration order.
func possibleValuesJSON(entries []models.EnumEntry) (string, error) {
	om := orderedmap.New[string, string]()
	for _, e := range entries {
		om.Set(e.Key, e.Value)
	}
	b, err := json.MarshalIndent(om, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding possible values: %w", err)
	}
	return string(b), nil
}

// dataTypeProperties flattens properties so each dependent follows its parent.
func dataTypeProperties(onto *models.Ontology) []*models.DataTypeProperty {
	out := make([]*models.DataTypeProperty, 0, len(onto.DataTypeProperties))
	for _, p := range onto.DataTypeProperties {
		out = append(out, p)
		out = append(out, p.Dependents...)
	}
	return out
}

func dependentIRIs(p *models.DataTypeProperty) []string {
	out := make([]string, 0, len(p.Dependents))
	for _, d := range p.Dependents {
		out = append(out, d.IRI)
	}
	return out
}
