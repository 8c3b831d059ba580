package ssr

import "fmt"

// CompileErrorKind classifies a template compilation failure. These are
// kinds, not a type hierarchy: callers switch on Kind rather than on the
// dynamic type of the error.
type CompileErrorKind int

const (
	KindForbiddenPropertyBinding CompileErrorKind = iota
	KindForbiddenEventBinding
	KindForbiddenElementPart
	KindBindingInScript
	KindBindingInStyle
	KindHydratableRawTextBinding
	KindNestingViolation
	KindParseError
)

func (k CompileErrorKind) String() string {
	switch k {
	case KindForbiddenPropertyBinding:
		return "FORBIDDEN_PROPERTY_BINDING_IN_SERVER_TEMPLATE"
	case KindForbiddenEventBinding:
		return "FORBIDDEN_EVENT_BINDING_IN_SERVER_TEMPLATE"
	case KindForbiddenElementPart:
		return "FORBIDDEN_ELEMENT_PART_IN_SERVER_TEMPLATE"
	case KindBindingInScript:
		return "BINDING_IN_SCRIPT"
	case KindBindingInStyle:
		return "BINDING_IN_STYLE"
	case KindHydratableRawTextBinding:
		return "HYDRATABLE_RAW_TEXT_BINDING"
	case KindNestingViolation:
		return "SERVER_ONLY_TEMPLATE_NESTED_IN_HYDRATABLE"
	case KindParseError:
		return "HTML_PARSE_ERROR"
	default:
		return "UNKNOWN_COMPILE_ERROR"
	}
}

// CompileError reports a template whose static shape cannot legally be
// compiled — e.g. a property binding inside a server-only template, or a
// binding inside a <script> element. These are all detectable from the
// statics alone, so they surface at compile time rather than render time.
type CompileError struct {
	Kind   CompileErrorKind
	Detail string
}

func (e *CompileError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("ssr: compile error: %s", e.Kind)
	}
	return fmt.Sprintf("ssr: compile error: %s: %s", e.Kind, e.Detail)
}

// RenderErrorKind classifies a failure that can only be detected once
// dynamic values are known (unlike CompileErrorKind, which is purely a
// function of the statics).
type RenderErrorKind int

const (
	// KindServerOnlyInsideHydratable fires when a hydratable template's
	// dynamic value is itself a TemplateResult produced by ServerHTML; a
	// server-only template may contain a hydratable child, never the
	// reverse.
	KindServerOnlyInsideHydratable RenderErrorKind = iota
	KindClientOnlyDirective
)

type RenderError struct {
	Kind          RenderErrorKind
	DirectiveName string
}

func (e *RenderError) Error() string {
	switch e.Kind {
	case KindServerOnlyInsideHydratable:
		return "ssr: a server-only template cannot be nested inside a hydratable template"
	case KindClientOnlyDirective:
		return (&DirectiveError{Name: e.DirectiveName}).Error()
	default:
		return "ssr: render error"
	}
}

// internalError marks a panic raised for a condition that should be
// unreachable if the compiler and executor are both correct: an opcode
// referencing more dynamic values than the template was given, an unknown
// opcode kind, or a fragment of a shape the iterator does not know. (Next
// called again before a pending Promise was resolved is not one of these:
// it returns ErrIteratorBusy instead of panicking.) The stream
// adapter recovers these and turns them into a terminal stream error
// rather than crashing the whole process, the same way a corrupted parse
// tree is treated as a bug rather than a user-facing error.
type internalError struct {
	Kind   string
	Detail string
}

func (e *internalError) Error() string {
	return fmt.Sprintf("ssr: internal error (%s): %s", e.Kind, e.Detail)
}

func panicInternal(kind, detail string) {
	panic(&internalError{Kind: kind, Detail: detail})
}

// ErrIteratorBusy is returned by FragmentIterator.Next when it is called
// again before a previously-yielded Promise was resolved with Resolve.
var ErrIteratorBusy = fmt.Errorf("ssr: fragment iterator: Next called while a Promise await is pending")
