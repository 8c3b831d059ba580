package ssr

import (
	"fmt"
	"reflect"
)

// renderValue turns one dynamic value into the Fragment it contributes,
// recursively resolving directive results and nested templates. hydratable
// is the enclosing template's hydratability, which governs whether an
// empty/plain value needs to be wrapped in hydration markers at all.
func renderValue(value any, ctx *RenderContext, hydratable bool) (Fragment, error) {
	switch v := value.(type) {
	case nothingSentinel, noChangeSentinel:
		return emptyChildPart(hydratable), nil
	case DirectiveResult:
		resolved, err := resolveDirective(v)
		if err != nil {
			return nil, err
		}
		return renderValue(resolved, ctx, hydratable)
	case TemplateResult:
		return renderNestedTemplate(v, ctx, hydratable)
	case Promise:
		if !hydratable {
			return v, nil
		}
		return []Fragment{openPartBare, v, closePart}, nil
	case nil:
		return emptyChildPart(hydratable), nil
	}

	if slice, ok := reflectSlice(value); ok {
		items := make([]Fragment, 0, len(slice)+2)
		if hydratable {
			items = append(items, openPartBare)
		}
		for _, el := range slice {
			el := el
			items = append(items, func() (Fragment, error) {
				return renderValue(el, ctx, hydratable)
			})
		}
		if hydratable {
			items = append(items, closePart)
		}
		return items, nil
	}

	text := Escape(fmt.Sprint(value))
	if !hydratable {
		return text, nil
	}
	return []Fragment{openPartBare, text, closePart}, nil
}

func emptyChildPart(hydratable bool) Fragment {
	if !hydratable {
		return nil
	}
	return []Fragment{openPartBare, closePart}
}

func renderNestedTemplate(tr TemplateResult, ctx *RenderContext, hydratable bool) (Fragment, error) {
	if hydratable && !tr.Hydratable {
		return nil, &RenderError{Kind: KindServerOnlyInsideHydratable}
	}
	// Render itself wraps tr in hydration markers when tr.Hydratable, and
	// leaves server-only output bare; deferring the whole call as a thunk
	// is what makes recursive rendering lazy, matching how every other
	// dynamic child value is only materialized when the fragment iterator
	// actually reaches it.
	return func() (Fragment, error) {
		return Render(tr, ctx)
	}, nil
}

// reflectSlice converts a slice or array value (other than string/[]byte,
// which render as plain text) to a []any via reflection, covering the
// "non-primitive iterable" dynamic-value case generically instead of
// requiring callers to pass []any specifically.
func reflectSlice(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	switch v.(type) {
	case string, []byte:
		return nil, false
	case DirectiveResult, TemplateResult:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		out := make([]any, n)
		for i := 0; i < n; i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

// truthy mirrors the DOM's notion of a boolean-attribute value: everything
// is truthy except nil, false, the zero values of numeric kinds, the
// empty string, and the Nothing sentinel.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case nothingSentinel:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	}
	return true
}
