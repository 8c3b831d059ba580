// Package ssr renders a component-oriented HTML template language on the
// server. Given a TemplateResult — a sequence of static HTML fragments
// interleaved with dynamic values — it produces an HTML byte stream
// containing the serialized markup, declarative shadow-DOM templates for
// any registered custom elements, and hydration comment markers that a
// companion client-side library uses to locate and update dynamic parts
// without re-parsing.
//
// # Quick start
//
// Allocate one *TemplateHandle per template call site and reuse it; the
// handle's identity is the cache key for the compiled opcode list and the
// digest, mirroring how a tagged-template literal is a stable object in
// source languages that have them:
//
//	var greeting = ssr.NewHandle()
//
//	func Greet(name string) ssr.TemplateResult {
//	    return ssr.HTML(greeting, []string{"<div>Hello, ", "!</div>"}, name)
//	}
//
//	func main() {
//	    out, err := ssr.Collect(context.Background(), Greet("World"))
//	    ...
//	}
//
// # How it works
//
// Templates are compiled once per handle into an opcode list by a single
// HTML parse (see compile.go), then the opcode list is executed against the
// dynamic values to produce a lazily-evaluated tree of Fragments (see
// exec.go, value.go). A FragmentIterator flattens that tree into a sequence
// of strings and, where a value is still pending, asynchronous awaits (see
// fragment.go). RenderResultReadable coalesces that sequence into
// backpressure-respecting byte chunks for a streaming HTTP response (see
// stream.go).
//
// Custom elements are resolved through a small ElementRendererClass
// registry (see elements.go): each registered custom element tag is
// matched against an ordered list of renderer classes, instantiated, and
// walked through a setAttribute/connectedCallback/renderAttributes/
// renderShadow lifecycle that mirrors a real DOM custom element without
// requiring one.
package ssr
