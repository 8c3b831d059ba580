package ssr

import "github.com/go-lit/ssr/internal/domshim"

// The Component lifecycle surface and the custom-element registry live in
// internal/domshim, kept separate from the rendering logic exactly as the
// spec's component (1) names a "minimal interface core depends on" rather
// than a real DOM. These aliases let the rest of this package refer to them
// unqualified, and let callers write ssr.Component, ssr.DefineElement, etc.
// without needing to know the split exists.
type (
	Component           = domshim.Component
	Reactive            = domshim.Reactive
	PreRenderHook       = domshim.PreRenderHook
	Renderable          = domshim.Renderable
	Styled              = domshim.Styled
	ReflectingComponent = domshim.ReflectingComponent
	ARIAHost            = domshim.ARIAHost
	ElementConstructor  = domshim.Constructor
)

var globalCustomElements = domshim.Global

// DefineElement registers a custom element constructor in the global,
// process-wide registry. Installation is idempotent: calling it more than
// once for the same tag has no additional effect.
func DefineElement(tag string, ctor ElementConstructor) {
	globalCustomElements.Define(tag, ctor)
}

// InstallGlobalDOMShim exists for symmetry with the client-side polyfill's
// "install once at startup" entry point. Core's own global state (the
// custom element registry, the opcode/digest caches) is always valid from
// first use, so this is a no-op retained as the documented, idempotent
// hook a host application can call during init without needing to know
// that core doesn't actually require it.
func InstallGlobalDOMShim() {}
