// Package domshim is the minimal stand-in for the pieces of a DOM/custom-
// element runtime that the renderer depends on: an element's lifecycle
// surface and the global custom-element registry. Nothing here renders
// anything; the ssr package owns all rendering behavior and only asks this
// package "does a constructor exist for this tag, and does this value look
// like a component."
package domshim

import "sync"

// Fragment mirrors ssr.Fragment structurally (both are `any`); it is
// redeclared here rather than imported to avoid a dependency cycle, since
// ssr is the package that depends on domshim, not the other way around.
type Fragment = any

// Component is the minimal interface a custom-element implementation must
// satisfy. The renderer never touches a real DOM or a real custom-element
// registry; it depends only on this interface and on Registry below, which
// stands in for the browser's global `customElements` object. A real DOM
// polyfill, if one is wired in by the host application, registers
// constructors here exactly as it would call `customElements.define`.
type Component interface {
	// ComponentMarker is a zero-cost marker method: its only purpose is to
	// make accidental non-component types fail to satisfy the interface at
	// compile time.
	ComponentMarker()
}

// Reactive components receive property and attribute writes driven by the
// template's bindings, and report which properties actually changed so the
// executor can decide what to reflect back out as attributes.
type Reactive interface {
	Component
	SetProperty(name string, value any)
	SetAttribute(name, value string)
	ChangedProperties() []string
}

// PreRenderHook lets a component run setup logic after construction and
// attribute/property application but before connectedCallback-equivalent
// work; mirrors a component library's "props are now stable" hook.
type PreRenderHook interface {
	Component
	PreRender()
}

// Renderable components produce shadow-DOM content.
type Renderable interface {
	Component
	Render() Fragment
}

// Styled components contribute <style> text rendered inside their own
// declarative shadow root, ahead of Render's output.
type Styled interface {
	Component
	Styles() []string
}

// ReflectingComponent exposes additional property->attribute reflections
// beyond the fixed table ssr keeps internally, keyed by property name.
type ReflectingComponent interface {
	Component
	ReflectedAttributes() map[string]string
}

// ARIAHost exposes ARIA-mixin-shaped properties that should be mirrored to
// aria-* attributes.
type ARIAHost interface {
	Component
	ARIAProperties() map[string]string
}

// Constructor constructs a fresh Component instance. It must be pure and
// side-effect free; all observable behavior happens through the Component
// lifecycle methods, not during construction.
type Constructor func() Component

// Registry is the stand-in for the DOM's global customElements registry: a
// process-wide, idempotent map from tag name to constructor. The compiler
// consults it to decide, from the static template shape alone, whether a
// tag should be compiled with the custom-element opcode sequence.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// Global is the process-wide registry every ssr.DefineElement call and
// every compilation consults, mirroring the single global `customElements`
// object a real DOM provides.
var Global = &Registry{ctors: make(map[string]Constructor)}

// Define registers ctor for tag. Redefinition of an already-registered tag
// is ignored (first registration wins), matching the DOM's own
// `customElements.define` throwing on redefinition — except here, since
// there is no exception-shaped failure mode for this, the original
// registration is simply kept.
func (r *Registry) Define(tag string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ctors[tag]; exists {
		return
	}
	r.ctors[tag] = ctor
}

// Get reports whether tag has a registered constructor.
func (r *Registry) Get(tag string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.ctors[tag]
	return ctor, ok
}
