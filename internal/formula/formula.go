// Package formula composes title and display formulas from declared argument lists.
//
// A formula is a JavaScript expression evaluated by the ontology consumer:
// property references become prop('<iri>') calls, literals become quoted
// strings and nested groups are parenthesised. Parts are joined with " + "
// in declaration order.
package formula

import (
	"strings"

	"github.com/ajitpratap0/ontology-owl/internal/models"
)

const joiner = " + "

// Options controls how property references are resolved.
type Options struct {
	// Prefix is prepended to every referenced property URI.
	Prefix string
}

// Composer builds formula text. The zero value is ready to use.
type Composer struct{}

// NewComposer returns a Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose returns the formula for args. An empty result means no formula.
func (c *Composer) Compose(opts Options, args []models.Arg) string {
	return strings.Join(c.parts(opts, args), joiner)
}

func (c *Composer) parts(opts Options, args []models.Arg) []string {
	parts := make([]string, 0, len(args))
	for i := range args {
		if tok := c.token(opts, args[i]); tok != "" {
			parts = append(parts, tok)
		}
	}
	return parts
}

func (c *Composer) token(opts Options, arg models.Arg) string {
	switch {
	case strings.TrimSpace(arg.Property) != "":
		return "prop(" + quote(opts.Prefix+strings.TrimSpace(arg.Property)) + ")"
	case len(arg.Args) > 0:
		inner := c.parts(opts, arg.Args)
		if len(inner) == 0 {
			return ""
		}
		return "(" + strings.Join(inner, joiner) + ")"
	case arg.Literal != "":
		return quote(arg.Literal)
	default:
		return ""
	}
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)

// quote renders s as a single-quoted JavaScript string literal.
func quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}
