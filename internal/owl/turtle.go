package owl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ajitpratap0/ontology-owl/internal/models"
)

var turtlePrefixes = map[string]string{
	"rdf":    NamespaceRDF,
	"rdfs":   NamespaceRDFS,
	"owl":    NamespaceOWL,
	"xsd":    NamespaceXSD,
	"lumify": NamespaceLumify,
}

var turtleEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

const iriRefForbidden = "<>\"{}|^`\\"

// predicate is one "predicate object" pair of a subject.
type predicate struct {
	name   string
	object string
}

// iriRef writes iri as a Turtle IRIREF. Characters IRIREF does not allow are
// written as \u escapes, which denote the same IRI.
func iriRef(iri string) string {
	var sb strings.Builder
	sb.Grow(len(iri) + 2)
	sb.WriteByte('<')
	for _, r := range iri {
		if r <= 0x20 || strings.ContainsRune(iriRefForbidden, r) {
			fmt.Fprintf(&sb, `\u%04X`, r)
			continue
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('>')
	return sb.String()
}

func literal(s string) string { return `"` + turtleEscaper.Replace(s) + `"` }

func langLiteral(s string) string { return literal(s) + "@en" }

// compact abbreviates iri with a known prefix when possible.
func compact(iri string) string {
	if strings.HasPrefix(iri, NamespaceXSD) {
		return "xsd:" + strings.TrimPrefix(iri, NamespaceXSD)
	}
	return iriRef(iri)
}

func writeSubject(sb *strings.Builder, subject, typ string, preds []predicate) {
	sb.WriteString(subject)
	sb.WriteString(" a ")
	sb.WriteString(typ)
	for _, p := range preds {
		sb.WriteString(" ;\n    ")
		sb.WriteString(p.name)
		sb.WriteString(" ")
		sb.WriteString(p.object)
	}
	sb.WriteString(" .\n\n")
}

func toTurtle(onto *models.Ontology) (string, error) {
	var sb strings.Builder

	names := make([]string, 0, len(turtlePrefixes))
	for name := range turtlePrefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", name, turtlePrefixes[name]))
	}
	sb.WriteString("\n")

	writeSubject(&sb, iriRef(onto.BaseIRI), "owl:Ontology", []predicate{{"owl:imports", iriRef(ImportIRI)}})

	for _, c := range onto.Classes {
		preds := []predicate{{"rdfs:label", langLiteral(c.Label)}}
		if c.ParentIRI != "" {
			preds = append(preds, predicate{"rdfs:subClassOf", iriRef(c.ParentIRI)})
		}
		if c.Comment != "" {
			preds = append(preds, predicate{"rdfs:comment", literal(c.Comment)})
		}
		if strings.TrimSpace(c.TitleFormula) != "" {
			preds = append(preds, predicate{"lumify:titleFormula", literal(c.TitleFormula)})
		}
		for _, icon := range c.GlyphIconFileNames {
			preds = append(preds, predicate{"lumify:glyphIconFileName", literal(icon)})
		}
		writeSubject(&sb, iriRef(c.IRI), "owl:Class", preds)
	}

	for _, p := range onto.ObjectProperties {
		preds := []predicate{{"rdfs:label", langLiteral(p.Label)}}
		if p.InverseIRI != "" {
			preds = append(preds, predicate{"owl:inverseOf", iriRef(p.InverseIRI)})
		}
		for _, d := range p.Domain {
			preds = append(preds, predicate{"rdfs:domain", iriRef(d)})
		}
		for _, r := range p.Range {
			preds = append(preds, predicate{"rdfs:range", iriRef(r)})
		}
		writeSubject(&sb, iriRef(p.IRI), "owl:ObjectProperty", preds)
	}

	for _, p := range dataTypeProperties(onto) {
		preds := []predicate{{"rdfs:label", langLiteral(p.Label)}}
		for _, hint := range p.TextIndexHints {
			preds = append(preds, predicate{"lumify:textIndexHints", literal(hint)})
		}
		preds = append(preds, predicate{"rdfs:range", compact(p.Range.XSD())})
		if p.Comment != "" {
			preds = append(preds, predicate{"rdfs:comment", literal(p.Comment)})
		}
		if strings.TrimSpace(p.DisplayFormula) != "" {
			preds = append(preds, predicate{"lumify:displayFormula", literal(p.DisplayFormula)})
		}
		for _, dep := range dependentIRIs(p) {
			preds = append(preds, predicate{"lumify:dependentPropertyIri", literal(dep)})
		}
		if len(p.PossibleValues) > 0 {
			values, err := possibleValuesJSON(p.PossibleValues)
			if err != nil {
				return "", fmt.Errorf("property %s: %w", p.IRI, err)
			}
			preds = append(preds, predicate{"lumify:possibleValues", literal(values)})
		}
		for _, d := range p.Domain {
			preds = append(preds, predicate{"rdfs:domain", iriRef(d)})
		}
		writeSubject(&sb, iriRef(p.IRI), "owl:DatatypeProperty", preds)
	}

	return sb.String(), nil
}
