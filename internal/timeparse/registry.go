package timeparse

import (
	"slices"
	"sync"
)

// Registry owns the compiled grammars: one per DateSpec, plus the ordered
// fallback sequence used for permissive parsing.
type Registry struct {
	bySpec   [numSpecs]*Grammar
	fallback []*Grammar
}

// NewRegistry compiles every grammar. Most callers should use the shared
// instance behind Parse and ParsePermissive instead.
func NewRegistry() *Registry {
	r := &Registry{}
	r.bySpec[RFC822] = newRFC822Grammar()
	r.bySpec[RFC3339] = newRFC3339Grammar()
	r.bySpec[ISO8601] = newISO8601Grammar()

	// Most feeds are RSS, so RFC 822 goes first. The bare date is the least
	// specific and only wins when nothing else does.
	r.fallback = []*Grammar{
		r.bySpec[RFC822],
		r.bySpec[RFC3339],
		r.bySpec[ISO8601],
		newDateOnlyGrammar(),
	}
	return r
}

var defaultRegistry = sync.OnceValue(NewRegistry)

// GrammarFor returns the grammar for spec, or nil if spec is not one of the
// declared DateSpec values.
func (r *Registry) GrammarFor(spec DateSpec) *Grammar {
	if !spec.valid() {
		return nil
	}
	return r.bySpec[spec]
}

// Fallback returns the grammars tried by permissive parsing, in order.
func (r *Registry) Fallback() []*Grammar {
	return slices.Clone(r.fallback)
}
