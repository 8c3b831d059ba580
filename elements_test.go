package ssr

import (
	"context"
	"strings"
	"testing"
)

// fakeCard is a minimal component exercising every optional lifecycle
// interface elements.go's DefaultElementRenderer drives: Reactive (so its
// properties/attributes reach ConnectedCallback), PreRenderHook,
// Renderable, Styled, and ARIAHost.
type fakeCard struct {
	title   string
	changed []string
}

func (f *fakeCard) ComponentMarker() {}

func (f *fakeCard) SetProperty(name string, value any) {
	if name == "title" {
		f.title = value.(string)
	}
	f.changed = append(f.changed, name)
}

func (f *fakeCard) SetAttribute(name, value string) {}

func (f *fakeCard) ChangedProperties() []string { return f.changed }

func (f *fakeCard) PreRender() {
	if f.title == "" {
		f.title = "untitled"
	}
}

var fakeCardRenderHandle = NewHandle()

// Render returns a further TemplateResult, the way a real component built
// on this template language would (its own html`<h2>${title}</h2>` call),
// rather than a raw HTML string: RenderShadow routes this value through
// renderValue (§4.6), which treats a bare string as plain escapable text,
// not markup — a raw string is only correct Fragment content when it is
// already-serialized output, e.g. a static fragment the compiler itself
// produced.
func (f *fakeCard) Render() Fragment {
	return HTML(fakeCardRenderHandle, []string{"<h2>", "</h2>"}, f.title)
}

func (f *fakeCard) Styles() []string {
	return []string{":host{display:block}"}
}

func (f *fakeCard) ARIAProperties() map[string]string {
	return map[string]string{"ariaLabel": "card"}
}

func newFakeCard() Component { return &fakeCard{} }

func TestCustomElementRendersShadowDOMAndARIAMirrors(t *testing.T) {
	DefineElement("fake-card", newFakeCard)

	h := NewHandle()
	tr := HTML(h, []string{"<fake-card .title=", "></fake-card>"}, "Hello")

	got, err := Collect(context.Background(), tr)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if !strings.Contains(got, `<template shadowroot="open" shadowrootmode="open">`) {
		t.Fatalf("expected a declarative shadow root open tag, got %q", got)
	}
	if !strings.Contains(got, "<style>:host{display:block}</style>") {
		t.Fatalf("expected the component's style text embedded, got %q", got)
	}
	if !strings.Contains(got, "<h2>") || !strings.Contains(got, "Hello") || !strings.Contains(got, "</h2>") {
		t.Fatalf("expected the component's render() output, got %q", got)
	}
	if !strings.Contains(got, `aria-label="card"`) {
		t.Fatalf("expected the ARIA mirror attribute, got %q", got)
	}
	if !strings.Contains(got, "data-lit-internal-aria-label") {
		t.Fatalf("expected the paired internal marker attribute, got %q", got)
	}
	if !strings.Contains(got, "</template>") {
		t.Fatalf("expected the shadow root to be closed, got %q", got)
	}
}

func TestUnregisteredCustomElementFallsBackWithoutError(t *testing.T) {
	h := NewHandle()
	tr := HTML(h, []string{"<totally-unregistered-thing foo=", "></totally-unregistered-thing>"}, "bar")

	got, err := Collect(context.Background(), tr)
	if err != nil {
		t.Fatalf("an unregistered custom element must never fail rendering: %v", err)
	}
	if !strings.Contains(got, `foo="bar"`) {
		t.Fatalf("expected the attribute to pass through unchanged, got %q", got)
	}
	if strings.Contains(got, "shadowroot") {
		t.Fatalf("fallback rendering must not emit a shadow root, got %q", got)
	}
}

// nestingCard has a shadow DOM containing a second registered custom
// element, to check that the element rendered inside its shadow DOM
// carries defer-hydration.
type nestingCard struct{}

var nestingInnerHandle = NewHandle()

func (nestingCard) ComponentMarker() {}
func (nestingCard) Render() Fragment {
	// Returning the TemplateResult itself (rather than calling Render
	// directly) lets it execute against the same RenderContext the
	// surrounding custom element is rendering with, so its host stack
	// (and therefore defer-hydration) carries through correctly; see
	// elements.go's RenderShadow.
	return HTML(nestingInnerHandle, []string{"<fake-card></fake-card>"})
}

func TestNestedCustomElementInShadowDOMDefersHydration(t *testing.T) {
	DefineElement("fake-card", newFakeCard)
	DefineElement("nesting-card", func() Component { return nestingCard{} })

	h := NewHandle()
	tr := HTML(h, []string{"<nesting-card></nesting-card>"})

	got, err := Collect(context.Background(), tr)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if !strings.Contains(got, "defer-hydration") {
		t.Fatalf("expected defer-hydration on the nested custom element, got %q", got)
	}
}
