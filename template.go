package ssr

import "sync"

// TemplateHandle is the stable identity of one template-literal call
// site. Go has no tagged-template-literal object to key a cache on, so
// callers allocate one handle per call site with NewHandle and reuse it
// across every invocation of that call site — exactly as a tagged
// template literal is evaluated once per source location and reused in
// languages that have them. The compiled opcode list and the digest are
// both cached by handle identity.
type TemplateHandle struct {
	once       sync.Once
	opcodes    *Opcodes
	compileErr error
}

// NewHandle allocates a new, empty template identity. Call it once per
// template call site, typically assigning the result to a package-level
// or enclosing-scope variable:
//
//	var row = ssr.NewHandle()
//
//	func Row(x string) ssr.TemplateResult {
//	    return ssr.HTML(row, []string{"<tr><td>", "</td></tr>"}, x)
//	}
func NewHandle() *TemplateHandle {
	return &TemplateHandle{}
}

// TemplateResult is the value produced by HTML/ServerHTML: the static
// HTML fragments from one template call site, plus the dynamic values
// interleaved between them. Statics has exactly len(Values)+1 elements.
type TemplateResult struct {
	Handle     *TemplateHandle
	Statics    []string
	Values     []any
	Hydratable bool
}

// HTML builds a hydratable TemplateResult: its output is wrapped in
// <!--lit-part--> hydration markers so a client-side library can locate
// and update its dynamic parts without a full re-render.
func HTML(h *TemplateHandle, statics []string, values ...any) TemplateResult {
	return TemplateResult{Handle: h, Statics: statics, Values: values, Hydratable: true}
}

// ServerHTML builds a server-only TemplateResult: its output carries no
// hydration markers at all and is cheaper to render, at the cost of never
// being hydratable. A server-only template may nest a hydratable child;
// a hydratable template may never nest a server-only child (see
// RenderErrorKind.KindServerOnlyInsideHydratable).
func ServerHTML(h *TemplateHandle, statics []string, values ...any) TemplateResult {
	return TemplateResult{Handle: h, Statics: statics, Values: values, Hydratable: false}
}

// Nothing, rendered as a dynamic value, produces no output at all (not
// even empty hydration markers' content) other than the minimal wrapper a
// hydratable template always needs to keep part-indexing stable.
var Nothing any = nothingSentinel{}

// NoChange, rendered as a dynamic value, is treated identically to
// Nothing on the server: there is no prior render to diff against during
// SSR, so there is nothing to "not change" relative to. It exists so a
// directive written against both server and client can use the same
// sentinel in both places.
var NoChange any = noChangeSentinel{}

type nothingSentinel struct{}
type noChangeSentinel struct{}

// RenderOption customizes one call to Render.
type RenderOption func(*RenderContext)

// WithRenderers replaces the element-renderer classes considered for this
// call only, leaving the process-wide default list untouched. This is the
// per-call renderer override described in SPEC_FULL.md's supplemented
// features: useful for rendering the same templates under two different
// component registries (e.g. in tests).
func WithRenderers(classes ...ElementRendererClass) RenderOption {
	return func(ctx *RenderContext) {
		ctx.Renderers = classes
	}
}

// WithDeferHydration forces every custom element encountered during this
// render to carry the defer-hydration attribute, regardless of nesting.
func WithDeferHydration() RenderOption {
	return func(ctx *RenderContext) {
		ctx.DeferHydration = true
		ctx.deferredBy = "render option"
	}
}

// RenderContext carries the mutable state threaded through one call to
// Render: the active element-renderer classes, the stack of instantiated
// custom-element instances (top = the one whose shadow content is
// currently being emitted), the stack of host elements that have forced
// hydration deferral, and the current named-slot context.
type RenderContext struct {
	Renderers []ElementRendererClass

	instanceStack []ElementInstance
	hostStack     []ElementInstance
	slotStack     []slotFrame

	DeferHydration bool
	deferredBy     string
}

type slotFrame struct {
	name    string
	slotted bool
}

// DeferredBy reports what, if anything, forces hydration deferral for the
// element currently being rendered — a diagnostic aid beyond the bare
// defer-hydration attribute written to output. It returns
// "custom-element host" inside a custom element's shadow root, "render
// option" under WithDeferHydration, and "" otherwise; it does not name
// the ancestor element.
func (ctx *RenderContext) DeferredBy() string {
	if len(ctx.hostStack) > 0 {
		return "custom-element host"
	}
	return ctx.deferredBy
}

// NewRenderContext builds a fresh RenderContext with no active custom
// element instance, defaulting its renderer list to DefaultElementRenderer
// alone — the renderer class that drives any registered component through
// its Reactive/PreRenderHook/Renderable/Styled/ReflectingComponent/ARIAHost
// lifecycle. Pass WithRenderers to replace that list, e.g. in a test that
// wants a component registry with no default fallback to a real component
// renderer, or call Render's variadic RenderOption form instead of
// constructing one directly.
func NewRenderContext(opts ...RenderOption) *RenderContext {
	ctx := &RenderContext{Renderers: []ElementRendererClass{DefaultElementRenderer{}}}
	for _, o := range opts {
		o(ctx)
	}
	return ctx
}
