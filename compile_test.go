package ssr

import (
	"context"
	"strings"
	"testing"
)

func TestScenarioA_PlainChildValue(t *testing.T) {
	h := NewHandle()
	tr := HTML(h, []string{"<div>Hello, ", "!</div>"}, "Alice")

	got, err := Collect(context.Background(), tr)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	digest := Digest(tr.Statics)
	want := "<!--lit-part " + digest + "--><div>Hello, <!--lit-part-->Alice<!--/lit-part-->!</div><!--/lit-part-->"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestScenarioB_BooleanAndEventBindings(t *testing.T) {
	h := NewHandle()
	tr := HTML(h, []string{"<button ?disabled=", " @click=", ">OK</button>"}, true, func() {})

	got, err := Collect(context.Background(), tr)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	digest := Digest(tr.Statics)
	want := "<!--lit-part " + digest + "--><!--lit-node 0--><button disabled>OK</button><!--/lit-part-->"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestScenarioC_ServerOnlyDocumentWithHydratableChild(t *testing.T) {
	outer := NewHandle()
	inner := NewHandle()

	innerTR := HTML(inner, []string{"<p>", "</p>"}, "x")
	outerTR := ServerHTML(outer,
		[]string{"<!DOCTYPE html><html><body>", "</body></html>"},
		innerTR,
	)

	got, err := Collect(context.Background(), outerTR)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if strings.Contains(got[:strings.Index(got, "<body>")+len("<body>")], "lit-part") {
		t.Fatalf("server-only document prefix should carry no markers: %q", got)
	}
	innerDigest := Digest(innerTR.Statics)
	wantInner := "<!--lit-part " + innerDigest + "--><p><!--lit-part-->x<!--/lit-part--></p><!--/lit-part-->"
	if !strings.Contains(got, wantInner) {
		t.Fatalf("got %q, want it to contain %q", got, wantInner)
	}
	if !strings.HasPrefix(got, "<!DOCTYPE html><html><body>") {
		t.Fatalf("got %q, want document-level content with no markers", got)
	}
}

func TestScenarioD_IterableOfNestedTemplates(t *testing.T) {
	outer := NewHandle()
	item := NewHandle()

	render := func(x string) TemplateResult {
		return HTML(item, []string{"<li>", "</li>"}, x)
	}
	tr := HTML(outer, []string{"<ul>", "</ul>"}, []TemplateResult{render("a"), render("b")})

	got, err := Collect(context.Background(), tr)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	opens := strings.Count(got, "<!--lit-part")
	closes := strings.Count(got, "<!--/lit-part-->")
	if opens != closes {
		t.Fatalf("marker imbalance: %d opens, %d closes in %q", opens, closes, got)
	}
	if strings.Count(got, "<li>") != 2 {
		t.Fatalf("expected two <li> elements in %q", got)
	}
}

type cacheDirective struct{}

func (cacheDirective) Name() string                          { return "cache" }
func (cacheDirective) Render(values ...any) (Fragment, error) { return "", nil }

func TestScenarioE_ClientOnlyDirectiveFails(t *testing.T) {
	h := NewHandle()
	tr := HTML(h, []string{"", ""}, DirectiveResult{Directive: cacheDirective{}})

	_, err := Collect(context.Background(), tr)
	if err == nil {
		t.Fatalf("expected an error for a client-only directive")
	}
	if !strings.Contains(err.Error(), "cache") {
		t.Fatalf("error %q should name the directive", err.Error())
	}
	if !strings.Contains(err.Error(), "list-repeat") {
		t.Fatalf("error %q should list at least one supported directive", err.Error())
	}
}

func TestMarkerBalance_ServerOnlyNeverEmitsMarkers(t *testing.T) {
	h := NewHandle()
	tr := ServerHTML(h, []string{"<p>", "</p>"}, "x")

	got, err := Collect(context.Background(), tr)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if strings.Contains(got, "lit-part") || strings.Contains(got, "lit-node") {
		t.Fatalf("server-only render emitted a marker: %q", got)
	}
}

func TestNestingRejection(t *testing.T) {
	outer := NewHandle()
	inner := NewHandle()

	innerTR := ServerHTML(inner, []string{"<p>", "</p>"}, "x")
	outerTR := HTML(outer, []string{"<div>", "</div>"}, innerTR)

	_, err := Collect(context.Background(), outerTR)
	if err == nil {
		t.Fatalf("expected an error nesting a server-only template inside a hydratable one")
	}
	var renderErr *RenderError
	if !asRenderError(err, &renderErr) || renderErr.Kind != KindServerOnlyInsideHydratable {
		t.Fatalf("got %v, want a KindServerOnlyInsideHydratable RenderError", err)
	}
}

func TestNestingAllowed_HydratableInsideServerOnly(t *testing.T) {
	outer := NewHandle()
	inner := NewHandle()

	innerTR := HTML(inner, []string{"<p>", "</p>"}, "x")
	outerTR := ServerHTML(outer, []string{"<div>", "</div>"}, innerTR)

	if _, err := Collect(context.Background(), outerTR); err != nil {
		t.Fatalf("hydratable nested inside server-only should succeed, got %v", err)
	}
}

func TestForbiddenPropertyBindingInServerOnlyTemplate(t *testing.T) {
	h := NewHandle()
	_, err := Compile([]string{"<p .textContent=", "></p>"}, false)
	if err == nil {
		t.Fatalf("expected a compile error for a property binding in a server-only template")
	}
	var ce *CompileError
	if !asCompileError(err, &ce) || ce.Kind != KindForbiddenPropertyBinding {
		t.Fatalf("got %v, want KindForbiddenPropertyBinding", err)
	}
	_ = h
}

func TestForbiddenEventBindingInServerOnlyTemplate(t *testing.T) {
	_, err := Compile([]string{"<button @click=", "></button>"}, false)
	if err == nil {
		t.Fatalf("expected a compile error for an event binding in a server-only template")
	}
	var ce *CompileError
	if !asCompileError(err, &ce) || ce.Kind != KindForbiddenEventBinding {
		t.Fatalf("got %v, want KindForbiddenEventBinding", err)
	}
}

func asCompileError(err error, target **CompileError) bool {
	if ce, ok := err.(*CompileError); ok {
		*target = ce
		return true
	}
	return false
}

func asRenderError(err error, target **RenderError) bool {
	if re, ok := err.(*RenderError); ok {
		*target = re
		return true
	}
	return false
}
