package store

import (
	"fmt"

	"github.com/ajitpratap0/ontology-owl/internal/models"
)

// statement is one parameterised Cypher write.
type statement struct {
	Cypher string
	Params map[string]any
}

// edge is a directed relationship between two IRIs.
type edge struct {
	From string
	To   string
}

func edgeRows(edges []edge) []any {
	rows := make([]any, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, map[string]any{"from": e.From, "to": e.To})
	}
	return rows
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// buildStatements turns onto into MERGE statements. Nodes come first so that
// every relationship statement can MATCH both ends.
func buildStatements(onto *models.Ontology) []statement {
	base := onto.BaseIRI
	var stmts []statement

	stmts = append(stmts, statement{
		Cypher: fmt.Sprintf("MERGE (o:%s {iri: $base}) SET o.run_id = $run_id", LabelOntology),
		Params: map[string]any{"base": base, "run_id": onto.RunID},
	})

	classRows := make([]any, 0, len(onto.Classes))
	var subclass []edge
	for _, c := range onto.Classes {
		classRows = append(classRows, map[string]any{
			"iri":           c.IRI,
			"uri":           c.URI,
			"label":         c.Label,
			"comment":       c.Comment,
			"title_formula": c.TitleFormula,
			"glyph_icons":   orEmpty(c.GlyphIconFileNames),
		})
		if c.ParentIRI != "" {
			subclass = append(subclass, edge{From: c.IRI, To: c.ParentIRI})
		}
	}
	stmts = append(stmts, statement{
		Cypher: fmt.Sprintf(`MATCH (o:%s {iri: $base})
UNWIND $rows AS row
MERGE (c:%s {iri: row.iri})
SET c.uri = row.uri, c.label = row.label, c.comment = row.comment,
    c.title_formula = row.title_formula, c.glyph_icons = row.glyph_icons
MERGE (o)-[:%s]->(c)`, LabelOntology, LabelClass, RelDefines),
		Params: map[string]any{"base": base, "rows": classRows},
	})

	opRows := make([]any, 0, len(onto.ObjectProperties))
	var inverse, opDomain, opRange []edge
	for _, p := range onto.ObjectProperties {
		opRows = append(opRows, map[string]any{"iri": p.IRI, "uri": p.URI, "label": p.Label})
		if p.InverseIRI != "" {
			inverse = append(inverse, edge{From: p.IRI, To: p.InverseIRI})
		}
		for _, d := range p.Domain {
			opDomain = append(opDomain, edge{From: p.IRI, To: d})
		}
		for _, r := range p.Range {
			opRange = append(opRange, edge{From: p.IRI, To: r})
		}
	}
	stmts = append(stmts, statement{
		Cypher: fmt.Sprintf(`MATCH (o:%s {iri: $base})
UNWIND $rows AS row
MERGE (p:%s {iri: row.iri})
SET p.uri = row.uri, p.label = row.label
MERGE (o)-[:%s]->(p)`, LabelOntology, LabelObjectProperty, RelDefines),
		Params: map[string]any{"base": base, "rows": opRows},
	})

	dtpRows := make([]any, 0, len(onto.DataTypeProperties))
	var depends, dtpDomain []edge
	addDTP := func(p *models.DataTypeProperty) {
		values := make([]string, 0, len(p.PossibleValues))
		for _, e := range p.PossibleValues {
			values = append(values, e.Key+"="+e.Value)
		}
		dtpRows = append(dtpRows, map[string]any{
			"iri":             p.IRI,
			"uri":             p.URI,
			"label":           p.Label,
			"range":           p.Range.XSD(),
			"comment":         p.Comment,
			"display_formula": p.DisplayFormula,
			"possible_values": values,
			"text_index":      orEmpty(p.TextIndexHints),
		})
		for _, d := range p.Domain {
			dtpDomain = append(dtpDomain, edge{From: p.IRI, To: d})
		}
	}
	for _, p := range onto.DataTypeProperties {
		addDTP(p)
		for _, dep := range p.Dependents {
			addDTP(dep)
			depends = append(depends, edge{From: p.IRI, To: dep.IRI})
		}
	}
	stmts = append(stmts, statement{
		Cypher: fmt.Sprintf(`MATCH (o:%s {iri: $base})
UNWIND $rows AS row
MERGE (p:%s {iri: row.iri})
SET p.uri = row.uri, p.label = row.label, p.range = row.range, p.comment = row.comment,
    p.display_formula = row.display_formula, p.possible_values = row.possible_values,
    p.text_index_hints = row.text_index
MERGE (o)-[:%s]->(p)`, LabelOntology, LabelDatatypeProperty, RelDefines),
		Params: map[string]any{"base": base, "rows": dtpRows},
	})

	// Domain and range targets may name classes that were never declared, so
	// relationship ends are merged rather than matched.
	rel := func(fromLabel, rel, toLabel string, edges []edge) {
		if len(edges) == 0 {
			return
		}
		stmts = append(stmts, statement{
			Cypher: fmt.Sprintf(`UNWIND $rows AS row
MATCH (a:%s {iri: row.from})
MERGE (b:%s {iri: row.to})
MERGE (a)-[:%s]->(b)`, fromLabel, toLabel, rel),
			Params: map[string]any{"rows": edgeRows(edges)},
		})
	}
	rel(LabelClass, RelSubclassOf, LabelClass, subclass)
	rel(LabelObjectProperty, RelInverseOf, LabelObjectProperty, inverse)
	rel(LabelObjectProperty, RelDomain, LabelClass, opDomain)
	rel(LabelObjectProperty, RelRange, LabelClass, opRange)
	rel(LabelDatatypeProperty, RelDependsOn, LabelDatatypeProperty, depends)
	rel(LabelDatatypeProperty, RelDomain, LabelClass, dtpDomain)

	return stmts
}
