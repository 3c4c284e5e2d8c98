// Package iri maps legacy ontology URIs onto namespace-qualified global identifiers.
package iri

import "strings"

// FragmentSeparator joins the namespace base and the legacy URI.
const FragmentSeparator = "#"

// Mapper converts legacy URIs to global identifiers under a fixed base.
type Mapper struct {
	base string
}

// NewMapper returns a Mapper for base. A single trailing fragment separator is
// stripped so that "http://x/o#" and "http://x/o" produce identical output.
func NewMapper(base string) Mapper {
	return Mapper{base: strings.TrimSuffix(base, FragmentSeparator)}
}

// Base returns the normalised namespace base.
func (m Mapper) Base() string {
	return m.base
}

// Prefix returns the base followed by the fragment separator.
func (m Mapper) Prefix() string {
	return m.base + FragmentSeparator
}

// ToGlobalID returns the global identifier for uri.
func (m Mapper) ToGlobalID(uri string) string {
	return ToGlobalID(m.base, uri)
}

// ToGlobalID concatenates base, the fragment separator and uri verbatim.
func ToGlobalID(base, uri string) string {
	return base + FragmentSeparator + uri
}
