// Package typegen compiles a normalized AsyncAPI document into TypeScript
// type declarations.
//
// The compiler is a pure function of its input document and options: the
// same input always produces byte-identical output. All mutable state (the
// emitted-name set, the recursion guard, the output buffer) is scoped to a
// single Generate call, so one Generator can be reused across documents as
// long as calls are not interleaved.
package typegen

import (
	"github.com/signalwork/asyncgen/spec"
)

// EnumStyle selects how string enums are rendered.
type EnumStyle string

const (
	// EnumUnion renders enums as unions of quoted literals (default)
	EnumUnion EnumStyle = "union"
	// EnumNamed renders enums as named TypeScript enum declarations
	EnumNamed EnumStyle = "enum"
)

// Fallback selects the type used for untyped schemas, broken references
// and cycle back-edges.
type Fallback string

const (
	// FallbackUnknown is the strict fallback (default)
	FallbackUnknown Fallback = "unknown"
	// FallbackAny is the permissive fallback
	FallbackAny Fallback = "any"
)

// Options configures a Generator.
type Options struct {
	EnumStyle EnumStyle
	Fallback  Fallback

	// Export controls whether declarations carry the export keyword.
	Export bool
}

// DefaultOptions returns the option set the CLI uses when nothing is
// configured: literal unions, strict unknown fallback, exported
// declarations.
func DefaultOptions() Options {
	return Options{
		EnumStyle: EnumUnion,
		Fallback:  FallbackUnknown,
		Export:    true,
	}
}

// Result holds the rendered source plus any non-fatal problems hit during
// generation. Generation never aborts on a dangling reference; it degrades
// to the fallback type and records a warning here.
type Result struct {
	Source   string
	Warnings []string
}

// Generator compiles documents with a fixed option set.
type Generator struct {
	opts Options
}

// NewGenerator creates a Generator for the given options. Zero-valued
// option fields fall back to the defaults.
func NewGenerator(opts Options) *Generator {
	if opts.EnumStyle == "" {
		opts.EnumStyle = EnumUnion
	}
	if opts.Fallback == "" {
		opts.Fallback = FallbackUnknown
	}
	return &Generator{opts: opts}
}

// Generate renders the full declaration file for doc.
func (g *Generator) Generate(doc *spec.Document) *Result {
	s := newRenderState(doc, g.opts)
	return s.renderDocument()
}
