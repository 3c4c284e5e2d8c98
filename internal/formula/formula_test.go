package formula

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajitpratap0/ontology-owl/internal/models"
)

func TestCompose_PreservesDeclarationOrder(t *testing.T) {
	c := NewComposer()
	args := []models.Arg{
		{Property: "lastName"},
		{Literal: ", "},
		{Property: "firstName"},
	}

	got := c.Compose(Options{Prefix: "base#"}, args)

	assert.Equal(t, "prop('base#lastName') + ', ' + prop('base#firstName')", got)
}

func TestCompose_NestedGroup(t *testing.T) {
	c := NewComposer()
	args := []models.Arg{
		{Property: "street"},
		{Args: []models.Arg{
			{Literal: " "},
			{Property: "city"},
		}},
	}

	got := c.Compose(Options{Prefix: "base#address/"}, args)

	assert.Equal(t, "prop('base#address/street') + (' ' + prop('base#address/city'))", got)
}

func TestCompose_EmptyInputsYieldNoFormula(t *testing.T) {
	c := NewComposer()

	assert.Equal(t, "", c.Compose(Options{}, nil))
	assert.Equal(t, "", c.Compose(Options{}, []models.Arg{{}, {Args: []models.Arg{{}}}}))
	assert.Equal(t, "", strings.TrimSpace(c.Compose(Options{}, []models.Arg{{Property: "   "}})))
}

func TestCompose_EscapesLiterals(t *testing.T) {
	c := NewComposer()

	got := c.Compose(Options{}, []models.Arg{{Literal: `it's a \ test`}})

	assert.Equal(t, `'it\'s a \\ test'`, got)
}

func TestCompose_DeterministicAcrossCalls(t *testing.T) {
	c := NewComposer()
	args := []models.Arg{{Property: "b"}, {Property: "a"}, {Literal: "-"}}

	first := c.Compose(Options{Prefix: "x#"}, args)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Compose(Options{Prefix: "x#"}, args))
	}
}
