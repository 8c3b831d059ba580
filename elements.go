package ssr

import "fmt"

// ElementInstance is what the executor drives through a custom element's
// lifecycle: setAttribute/setProperty calls in source order, then
// connectedCallback, then a request for the final attribute string list,
// then a request for shadow content.
type ElementInstance interface {
	SetProperty(name string, value any)
	SetAttribute(name, value string)
	ConnectedCallback(ctx *RenderContext) error
	// RenderAttributes returns the complete `name="value"` attribute
	// strings (already HTML-escaped) that should appear on the open tag,
	// replacing anything written textually at compile time.
	RenderAttributes(ctx *RenderContext) []string
	// RenderShadow returns the element's declarative shadow DOM content.
	// hasShadow is false when the element has no shadow root at all (the
	// open tag is then left as a normal, non-shadow element).
	RenderShadow(ctx *RenderContext) (content []Fragment, opts ShadowOptions, hasShadow bool)
}

// ShadowOptions configures a declarative shadow root's open tag.
type ShadowOptions struct {
	Mode           string // "open" or "closed"
	DelegatesFocus bool
}

// ElementRendererClass matches a registered custom-element constructor
// against an ElementInstance implementation. RenderContext.Renderers is
// consulted in order; the first class whose Matches returns true wins.
type ElementRendererClass interface {
	Matches(tagName string, ctor ElementConstructor, staticAttrs map[string]string) bool
	New(tagName string, ctor ElementConstructor) ElementInstance
}

// DefaultElementRenderer matches any registered constructor and drives it
// through the Component/Reactive/PreRenderHook/Renderable/Styled/
// ReflectingComponent/ARIAHost optional-interface lifecycle. It is the
// sole entry of the renderer list NewRenderContext builds; WithRenderers
// replaces that list, and then it takes part only if it is listed again.
type DefaultElementRenderer struct{}

func (DefaultElementRenderer) Matches(tagName string, ctor ElementConstructor, staticAttrs map[string]string) bool {
	return ctor != nil
}

func (DefaultElementRenderer) New(tagName string, ctor ElementConstructor) ElementInstance {
	return &componentInstance{tagName: tagName, component: ctor()}
}

type componentInstance struct {
	tagName      string
	component    Component
	attrs        []htmlAttr
	reflectedSet map[string]string
}

func (ci *componentInstance) SetProperty(name string, value any) {
	if r, ok := ci.component.(Reactive); ok {
		r.SetProperty(name, value)
	}
}

func (ci *componentInstance) SetAttribute(name, value string) {
	ci.attrs = append(ci.attrs, htmlAttr{Name: name, Value: value})
	if r, ok := ci.component.(Reactive); ok {
		r.SetAttribute(name, value)
	}
}

func (ci *componentInstance) ConnectedCallback(ctx *RenderContext) error {
	if h, ok := ci.component.(PreRenderHook); ok {
		h.PreRender()
	}

	if r, ok := ci.component.(Reactive); ok {
		for _, name := range r.ChangedProperties() {
			if attr, ok := reflectedAttrFor(ci.tagName, name); ok {
				ci.attrs = append(ci.attrs, htmlAttr{Name: attr, Value: ""})
				if ci.reflectedSet == nil {
					ci.reflectedSet = map[string]string{}
				}
				ci.reflectedSet[attr] = name
			}
		}
	}

	if rc, ok := ci.component.(ReflectingComponent); ok {
		for prop, attr := range rc.ReflectedAttributes() {
			_ = prop
			ci.attrs = append(ci.attrs, htmlAttr{Name: attr, Value: ""})
		}
	}

	if ah, ok := ci.component.(ARIAHost); ok {
		for prop, val := range ah.ARIAProperties() {
			attrName, known := ariaMirrors[prop]
			if !known {
				continue
			}
			ci.attrs = append(ci.attrs, htmlAttr{Name: attrName, Value: val})
			ci.attrs = append(ci.attrs, htmlAttr{Name: internalMarkerAttr(prop), Value: ""})
		}
	}

	return nil
}

func (ci *componentInstance) RenderAttributes(ctx *RenderContext) []string {
	return renderAttrList(ci.attrs, ctx, len(ctx.hostStack) > 0 || ctx.DeferHydration)
}

func (ci *componentInstance) RenderShadow(ctx *RenderContext) ([]Fragment, ShadowOptions, bool) {
	r, canRender := ci.component.(Renderable)
	if !canRender {
		return nil, ShadowOptions{}, false
	}
	var frags []Fragment
	if styled, ok := ci.component.(Styled); ok {
		for _, s := range styled.Styles() {
			frags = append(frags, "<style>"+s+"</style>")
		}
	}
	// r.Render()'s return value is an arbitrary dynamic value — a plain
	// string, a nested TemplateResult, an iterable, a directive result —
	// exactly like any other dynamic value a template hole can produce.
	// Routing it through renderValue with the same ctx, rather than
	// splicing it in as a raw Fragment, is what lets a component's
	// Render() return a further ssr.HTML(...) call and have it execute
	// against this same RenderContext: the nested template then sees
	// ctx.hostStack/instanceStack exactly as this custom element's own
	// shadow content does, so a custom element nested inside another's
	// shadow DOM correctly picks up defer-hydration.
	frags = append(frags, func() (Fragment, error) {
		return renderValue(r.Render(), ctx, true)
	})
	return frags, ShadowOptions{Mode: "open"}, true
}

// renderAttrList turns a list of raw name/value pairs into escaped
// `name="value"` strings (value-less attributes emit no `=...` at all),
// appending defer-hydration when needed. Duplicate attribute names keep
// only the first occurrence, mirroring setAttribute's "last write wins
// but the slot was already claimed" semantics being irrelevant for an
// append-only server-side attribute buffer where callers never remove an
// attribute once added.
func renderAttrList(attrs []htmlAttr, ctx *RenderContext, deferHydration bool) []string {
	out := make([]string, 0, len(attrs)+1)
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		if a.Value == "" {
			out = append(out, a.Name)
			continue
		}
		out = append(out, fmt.Sprintf(`%s="%s"`, a.Name, escapeAttr(a.Value)))
	}
	if deferHydration {
		out = append(out, deferHydrationAttr)
	}
	return out
}

// fallbackRenderer is used for a tag that is a known custom element (so
// the compiler emitted the custom-element opcode sequence) but that no
// ElementRendererClass in the active RenderContext claims at execution
// time. It must never fail: it just reflects every attribute it's given
// back out and renders no shadow content, i.e. behaves like an
// undefined/unupgraded custom element.
type fallbackRenderer struct {
	tagName string
	attrs   []htmlAttr
}

func newFallbackRenderer(tagName string) *fallbackRenderer {
	return &fallbackRenderer{tagName: tagName}
}

func (f *fallbackRenderer) SetProperty(name string, value any) {}

func (f *fallbackRenderer) SetAttribute(name, value string) {
	f.attrs = append(f.attrs, htmlAttr{Name: name, Value: value})
}

func (f *fallbackRenderer) ConnectedCallback(ctx *RenderContext) error { return nil }

func (f *fallbackRenderer) RenderAttributes(ctx *RenderContext) []string {
	return renderAttrList(f.attrs, ctx, len(ctx.hostStack) > 0 || ctx.DeferHydration)
}

func (f *fallbackRenderer) RenderShadow(ctx *RenderContext) ([]Fragment, ShadowOptions, bool) {
	return nil, ShadowOptions{}, false
}
