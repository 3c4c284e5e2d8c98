package iri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMapper_StripsTrailingSeparatorOnce(t *testing.T) {
	assert.Equal(t, "http://example.org/onto", NewMapper("http://example.org/onto#").Base())
	assert.Equal(t, "http://example.org/onto", NewMapper("http://example.org/onto").Base())
	assert.Equal(t, "http://example.org/onto#", NewMapper("http://example.org/onto##").Base())
}

func TestToGlobalID(t *testing.T) {
	m := NewMapper("base#")
	assert.Equal(t, "base#Person", m.ToGlobalID("Person"))
	assert.Equal(t, "base#com.palantir.object.person", m.ToGlobalID("com.palantir.object.person"))
	assert.Equal(t, "base#", m.ToGlobalID(""))
	assert.Equal(t, "base#", m.Prefix())
}

func TestToGlobalID_Idempotent(t *testing.T) {
	m := NewMapper("http://example.org/onto#")
	for _, uri := range []string{"Person", "worksFor_inverse", "a/b c", "ünïcødé"} {
		assert.Equal(t, m.ToGlobalID(uri), m.ToGlobalID(uri))
		assert.Equal(t, ToGlobalID(m.Base(), uri), m.ToGlobalID(uri))
	}
}
