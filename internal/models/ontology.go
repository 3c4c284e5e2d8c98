package models

// Ontology is the resolved entity graph handed to serializers and sinks.
type Ontology struct {
	BaseIRI            string              `json:"base_iri" yaml:"base_iri"`
	RunID              string              `json:"run_id" yaml:"run_id"`
	Classes            []*Class            `json:"classes" yaml:"classes"`
	ObjectProperties   []*ObjectProperty   `json:"object_properties" yaml:"object_properties"`
	DataTypeProperties []*DataTypeProperty `json:"datatype_properties" yaml:"datatype_properties"`
	Stats              OntologyStats       `json:"stats" yaml:"stats"`
}

// OntologyStats summarises a conversion run.
type OntologyStats struct {
	Classes             int `json:"classes" yaml:"classes"`
	ObjectProperties    int `json:"object_properties" yaml:"object_properties"`
	DataTypeProperties  int `json:"datatype_properties" yaml:"datatype_properties"`
	DependentProperties int `json:"dependent_properties" yaml:"dependent_properties"`
	LinkRelations       int `json:"link_relations" yaml:"link_relations"`
	IconsBackfilled     int `json:"icons_backfilled" yaml:"icons_backfilled"`
	UnclaimedIcons      int `json:"unclaimed_icons" yaml:"unclaimed_icons"`
	PendingIcons        int `json:"pending_icons" yaml:"pending_icons"`
}

// ClassByIRI returns the class with the given global identifier, falling
// back to a legacy URI match when no identifier matches.
func (o *Ontology) ClassByIRI(iri string) (*Class, bool) {
	for _, c := range o.Classes {
		if c.IRI == iri {
			return c, true
		}
	}
	for _, c := range o.Classes {
		if c.URI == iri {
			return c, true
		}
	}
	return nil, false
}

// ObjectPropertyByIRI returns the object property with the given identifier or,
// failing that, legacy URI.
func (o *Ontology) ObjectPropertyByIRI(iri string) (*ObjectProperty, bool) {
	for _, p := range o.ObjectProperties {
		if p.IRI == iri {
			return p, true
		}
	}
	for _, p := range o.ObjectProperties {
		if p.URI == iri {
			return p, true
		}
	}
	return nil, false
}

// DataTypePropertyByIRI returns the data-type property, or dependent, with the
// given identifier or, failing that, legacy URI.
func (o *Ontology) DataTypePropertyByIRI(iri string) (*DataTypeProperty, bool) {
	if p, ok := o.findDataTypeProperty(func(p *DataTypeProperty) bool { return p.IRI == iri }); ok {
		return p, true
	}
	return o.findDataTypeProperty(func(p *DataTypeProperty) bool { return p.URI == iri })
}

func (o *Ontology) findDataTypeProperty(match func(*DataTypeProperty) bool) (*DataTypeProperty, bool) {
	for _, p := range o.DataTypeProperties {
		if match(p) {
			return p, true
		}
		for _, dep := range p.Dependents {
			if match(dep) {
				return dep, true
			}
		}
	}
	return nil, false
}
