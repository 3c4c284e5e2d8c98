package models

// XSD datatype IRIs used as data-type property ranges.
const (
	XSDString   = "http://www.w3.org/2001/XMLSchema#string"
	XSDDouble   = "http://www.w3.org/2001/XMLSchema#double"
	XSDDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
)

// Legacy base type identifiers recognised when inferring a value range.
const (
	BaseTypeNumber = "com.palantir.type.Number"
	BaseTypeDate   = "com.palantir.type.Date"
)

// TextIndexFullText is the text index hint attached to every data-type property.
const TextIndexFullText = "FULL_TEXT"

// ValueRange is the primitive kind of value a data-type property holds.
type ValueRange string

const (
	RangeString   ValueRange = "string"
	RangeNumeric  ValueRange = "numeric"
	RangeDateTime ValueRange = "datetime"
)

// RangeForBaseType infers a value range from a declared base type.
// Anything unrecognised, including an empty base type, is a string.
func RangeForBaseType(baseType string) ValueRange {
	switch baseType {
	case BaseTypeNumber:
		return RangeNumeric
	case BaseTypeDate:
		return RangeDateTime
	default:
		return RangeString
	}
}

// XSD returns the XML Schema datatype IRI for the range.
func (r ValueRange) XSD() string {
	switch r {
	case RangeNumeric:
		return XSDDouble
	case RangeDateTime:
		return XSDDateTime
	default:
		return XSDString
	}
}

// IRISet is an insertion-ordered set of identifiers. It only grows.
type IRISet []string

// Add appends iri unless it is already present and reports whether it was added.
func (s *IRISet) Add(iri string) bool {
	if s.Contains(iri) {
		return false
	}
	*s = append(*s, iri)
	return true
}

// Contains reports whether iri is in the set.
func (s IRISet) Contains(iri string) bool {
	for i := range s {
		if s[i] == iri {
			return true
		}
	}
	return false
}

// Class is an ontology class created from an object-type document.
type Class struct {
	URI                string   `json:"uri" yaml:"uri"`
	IRI                string   `json:"iri" yaml:"iri"`
	Label              string   `json:"label" yaml:"label"`
	ParentIRI          string   `json:"parent_iri,omitempty" yaml:"parent_iri,omitempty"`
	Comment            string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	TitleFormula       string   `json:"title_formula,omitempty" yaml:"title_formula,omitempty"`
	InfoIconURI        string   `json:"info_icon_uri,omitempty" yaml:"info_icon_uri,omitempty"`
	GlyphIconFileNames []string `json:"glyph_icon_file_names,omitempty" yaml:"glyph_icon_file_names,omitempty"`
}

// ObjectProperty is a relationship between classes created from a link-type document.
type ObjectProperty struct {
	URI        string `json:"uri" yaml:"uri"`
	IRI        string `json:"iri" yaml:"iri"`
	Label      string `json:"label" yaml:"label"`
	InverseURI string `json:"inverse_uri,omitempty" yaml:"inverse_uri,omitempty"`
	InverseIRI string `json:"inverse_iri,omitempty" yaml:"inverse_iri,omitempty"`
	Domain     IRISet `json:"domain" yaml:"domain"`
	Range      IRISet `json:"range" yaml:"range"`
}

// EnumEntry is one key/value pair of a property's enumeration, kept in declaration order.
type EnumEntry struct {
	Key   string `json:"key" yaml:"key" xml:"key"`
	Value string `json:"value" yaml:"value" xml:"value"`
}

// DataTypeProperty is a literal-valued property created from a property-type document.
// Dependents are the components of a composite property.
type DataTypeProperty struct {
	URI            string              `json:"uri" yaml:"uri"`
	IRI            string              `json:"iri" yaml:"iri"`
	Label          string              `json:"label" yaml:"label"`
	Range          ValueRange          `json:"range" yaml:"range"`
	Comment        string              `json:"comment,omitempty" yaml:"comment,omitempty"`
	TextIndexHints []string            `json:"text_index_hints,omitempty" yaml:"text_index_hints,omitempty"`
	DisplayFormula string              `json:"display_formula,omitempty" yaml:"display_formula,omitempty"`
	PossibleValues []EnumEntry         `json:"possible_values,omitempty" yaml:"possible_values,omitempty"`
	Dependents     []*DataTypeProperty `json:"dependents,omitempty" yaml:"dependents,omitempty"`
	Domain         IRISet              `json:"domain" yaml:"domain"`
}

// AddDomain adds iri to the property's domain and to the domain of every dependent.
func (p *DataTypeProperty) AddDomain(iri string) {
	p.Domain.Add(iri)
	for _, dep := range p.Dependents {
		dep.Domain.Add(iri)
	}
}

// InverseSuffix is appended to a link URI to name the inverse of an asymmetric link.
const InverseSuffix = "_inverse"
