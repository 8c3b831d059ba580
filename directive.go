package ssr

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DirectiveSupport classifies how (or whether) a named directive can run
// during server-side rendering.
type DirectiveSupport int

const (
	// DirectiveFull directives run identically on the server and produce
	// the same output a client-side re-render would.
	DirectiveFull DirectiveSupport = iota
	// DirectivePartial directives run on the server but only cover part
	// of their client-side behavior (e.g. they compute a value but the
	// live-update optimization they provide client-side has no
	// server-side analogue).
	DirectivePartial
	// DirectiveClientOnly directives have no server-side meaning at all
	// and fail to render rather than silently producing wrong output.
	DirectiveClientOnly
)

// directiveClassification is the fixed, non-extensible-at-runtime table
// naming every directive core knows about. It exists for documentation
// and for producing a precise DirectiveError message; it does not gate
// anything except DirectiveClientOnly entries.
var directiveClassification = map[string]DirectiveSupport{
	"list-repeat":   DirectiveFull,
	"transform-map": DirectiveFull,
	"join":          DirectiveFull,
	"integer-range": DirectiveFull,
	"when":          DirectiveFull,
	"choose":        DirectiveFull,
	"if-defined":    DirectiveFull,
	"guard":         DirectiveFull,
	"raw-html":      DirectiveFull,
	"raw-svg":       DirectiveFull,
	"raw-mathml":    DirectiveFull,

	"class-map": DirectivePartial,
	"style-map": DirectivePartial,
	"keyed":     DirectivePartial,

	"cache":            DirectiveClientOnly,
	"live":             DirectiveClientOnly,
	"until":            DirectiveClientOnly,
	"async-append":     DirectiveClientOnly,
	"async-replace":    DirectiveClientOnly,
	"ref":              DirectiveClientOnly,
	"template-content": DirectiveClientOnly,
}

func fullSupportNames() []string    { return namesWith(DirectiveFull) }
func partialSupportNames() []string { return namesWith(DirectivePartial) }

func namesWith(support DirectiveSupport) []string {
	var out []string
	for name, s := range directiveClassification {
		if s == support {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Directive is implemented by a server-renderable directive. Name must be
// one of the entries in the classification table so the renderer can
// decide whether it is allowed to run at all.
type Directive interface {
	Name() string
	Render(values ...any) (Fragment, error)
}

// DirectiveResult wraps a Directive invocation with the arguments it was
// called with; it is what a directive factory function returns, and it
// is itself a legal dynamic value (passed as a child, attribute, or
// element part).
type DirectiveResult struct {
	Directive Directive
	Values    []any
}

// directivePatched tracks, per Directive instance, whether its resolver
// has already run once — mirroring the client-side convention that a
// directive's "update" path only applies after its first "render", even
// though core only ever takes the render path (there is no prior render
// to diff against during SSR).
var directivePatched sync.Map // map[Directive]struct{}

// DirectiveError reports that a directive is classified as client-only
// and therefore cannot be rendered on the server at all.
type DirectiveError struct {
	Name string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf(
		"ssr: directive %q has no server-side rendering support (client-only); "+
			"fully supported: [%s]; partially supported: [%s]",
		e.Name, strings.Join(fullSupportNames(), ", "), strings.Join(partialSupportNames(), ", "),
	)
}

func resolveDirective(dr DirectiveResult) (Fragment, error) {
	name := dr.Directive.Name()
	if support, known := directiveClassification[name]; known && support == DirectiveClientOnly {
		return nil, &DirectiveError{Name: name}
	}
	directivePatched.LoadOrStore(dr.Directive, struct{}{})
	return dr.Directive.Render(dr.Values...)
}
