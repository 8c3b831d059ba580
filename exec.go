package ssr

import (
	"fmt"
	"strings"
)

// Render compiles tr's template (if not already cached) and executes it
// against tr's dynamic values, returning the Fragment tree ready to be
// driven by a FragmentIterator or streamed via RenderResultReadable. A
// hydratable TemplateResult is wrapped in its <!--lit-part DIGEST-->...
// <!--/lit-part--> markers; a server-only one is returned bare, whether
// this is the outermost call or a nested template reached through
// renderValue — the wrapping is a property of the TemplateResult itself,
// not of where in the tree it sits.
//
// ctx may be nil, in which case a fresh RenderContext from
// NewRenderContext is used, whose renderer list holds
// DefaultElementRenderer alone.
func Render(tr TemplateResult, ctx *RenderContext, opts ...RenderOption) (Fragment, error) {
	if ctx == nil {
		ctx = NewRenderContext()
	}
	for _, o := range opts {
		o(ctx)
	}
	frags, err := executeTemplate(tr, ctx)
	if err != nil {
		return nil, err
	}
	if !tr.Hydratable {
		return frags, nil
	}
	digest := digestFor(tr.Handle, tr.Statics)
	return []Fragment{openTemplatePart(digest), frags, closePart}, nil
}

func executeTemplate(tr TemplateResult, ctx *RenderContext) (Fragment, error) {
	ops, err := getOrCompile(tr.Handle, tr.Statics, tr.Hydratable)
	if err != nil {
		return nil, err
	}
	if len(tr.Values) != ops.valueCount {
		panicInternal("PART_VALUE_COUNT_MISMATCH",
			fmt.Sprintf("template expects %d values, got %d", ops.valueCount, len(tr.Values)))
	}

	partIndex := 0
	frags := make([]Fragment, 0, len(ops.ops))

	for _, op := range ops.ops {
		switch op.kind {
		case opText:
			frags = append(frags, op.text)

		case opChildPart:
			val := tr.Values[partIndex]
			partIndex++
			hydratable := tr.Hydratable
			frags = append(frags, func() (Fragment, error) {
				return renderValue(val, ctx, hydratable)
			})

		case opAttributePart:
			n := len(op.attrStatics) - 1
			vals := append([]any(nil), tr.Values[partIndex:partIndex+n]...)
			partIndex += n
			op := op
			frags = append(frags, func() (Fragment, error) {
				return commitAttribute(op, vals, ctx)
			})

		case opElementPart:
			partIndex++ // consumed, never rendered

		case opPossibleNodeMarker:
			if tr.Hydratable && (op.boundAttrCount > 0 || len(ctx.hostStack) > 0) {
				frags = append(frags, nodeMarker(op.nodeIndex))
			}

		case opCustomElementOpen:
			inst := instantiateCustomElement(op, ctx)
			frags = append(frags, sideEffect(func() {
				ctx.instanceStack = append(ctx.instanceStack, inst)
			}))

		case opCustomElementAttributes:
			frags = append(frags, func() (Fragment, error) {
				inst := ctx.instanceStack[len(ctx.instanceStack)-1]
				if err := inst.ConnectedCallback(ctx); err != nil {
					return nil, err
				}
				attrs := inst.RenderAttributes(ctx)
				tag := "<" + op.tagName
				if len(attrs) > 0 {
					tag += " " + strings.Join(attrs, " ")
				}
				return tag, nil
			})

		case opCustomElementShadow:
			frags = append(frags, func() (Fragment, error) {
				inst := ctx.instanceStack[len(ctx.instanceStack)-1]
				content, shadowOpts, hasShadow := inst.RenderShadow(ctx)
				if !hasShadow {
					return nil, nil
				}
				items := make([]Fragment, 0, len(content)+3)
				items = append(items, sideEffect(func() {
					ctx.hostStack = append(ctx.hostStack, inst)
				}))
				items = append(items, shadowRootOpenTag(shadowOpts.Mode, shadowOpts.DelegatesFocus))
				items = append(items, content...)
				items = append(items, shadowRootCloseTag)
				items = append(items, sideEffect(func() {
					ctx.hostStack = ctx.hostStack[:len(ctx.hostStack)-1]
				}))
				return items, nil
			})

		case opCustomElementClose:
			frags = append(frags, sideEffect(func() {
				ctx.instanceStack = ctx.instanceStack[:len(ctx.instanceStack)-1]
			}))

		case opSlotElementOpen:
			name := op.slotName
			frags = append(frags, sideEffect(func() {
				ctx.slotStack = append(ctx.slotStack, slotFrame{name: name})
			}))
		case opSlotElementClose, opSlottedElementClose:
			frags = append(frags, sideEffect(func() {
				ctx.slotStack = ctx.slotStack[:len(ctx.slotStack)-1]
			}))
		case opSlottedElementOpen:
			name := op.slotName
			frags = append(frags, sideEffect(func() {
				ctx.slotStack = append(ctx.slotStack, slotFrame{name: name, slotted: true})
			}))

		default:
			panicInternal("UNKNOWN_OPCODE", fmt.Sprintf("%d", op.kind))
		}
	}

	if partIndex != len(tr.Values) {
		panicInternal("PART_INDEX_MISMATCH",
			fmt.Sprintf("consumed %d of %d values", partIndex, len(tr.Values)))
	}

	return frags, nil
}

// sideEffect wraps a state mutation as a zero-width Fragment so it is
// applied by the FragmentIterator exactly when iteration reaches it —
// not when executeTemplate constructs the (lazy) fragment list. Since
// executeTemplate builds its whole output eagerly but most of it is
// thunks, a plain Go statement run during that construction would fire
// far too early, before any sibling thunk placed after it has had a
// chance to run; positioning the mutation as a fragment in the sequence
// keeps it ordered correctly relative to deferred, possibly
// asynchronous, neighboring content.
func sideEffect(fn func()) Fragment {
	return func() Fragment {
		fn()
		return ""
	}
}

func instantiateCustomElement(op opcode, ctx *RenderContext) ElementInstance {
	ctor, ok := globalCustomElements.Get(op.tagName)
	if !ok {
		inst := newFallbackRenderer(op.tagName)
		applyStaticAttrs(inst, op.staticAttrs)
		return inst
	}

	staticAttrsMap := make(map[string]string, len(op.staticAttrs))
	for _, a := range op.staticAttrs {
		staticAttrsMap[a.Name] = a.Value
	}

	for _, rc := range ctx.Renderers {
		if rc.Matches(op.tagName, ctor, staticAttrsMap) {
			inst := rc.New(op.tagName, ctor)
			applyStaticAttrs(inst, op.staticAttrs)
			return inst
		}
	}

	inst := newFallbackRenderer(op.tagName)
	applyStaticAttrs(inst, op.staticAttrs)
	return inst
}

func applyStaticAttrs(inst ElementInstance, attrs []htmlAttr) {
	for _, a := range attrs {
		inst.SetAttribute(a.Name, a.Value)
	}
}

// commitAttribute computes the output (if any) for one attribute-part
// opcode, given its already-sliced dynamic values, and performs any
// property/attribute propagation to the enclosing custom-element
// instance.
func commitAttribute(op opcode, vals []any, ctx *RenderContext) (Fragment, error) {
	var currentInst ElementInstance
	if op.useCustomElementInstance && len(ctx.instanceStack) > 0 {
		currentInst = ctx.instanceStack[len(ctx.instanceStack)-1]
	}

	switch op.attrKind {
	case attrKindEvent:
		return "", nil

	case attrKindProperty:
		v := vals[0]
		if currentInst != nil {
			currentInst.SetProperty(op.attrName, v)
		}
		if attrName, ok := reflectedAttrFor(op.tagName, op.attrName); ok {
			return fmt.Sprintf(` %s="%s"`, attrName, escapeAttr(fmt.Sprint(v))), nil
		}
		return "", nil

	case attrKindBoolean:
		v := vals[0]
		if !truthy(v) {
			return "", nil
		}
		if currentInst != nil {
			currentInst.SetAttribute(op.attrName, "")
		}
		return " " + op.attrName, nil

	default: // attrKindAttribute, possibly multi-part
		var b strings.Builder
		omit := false
		for i, v := range vals {
			if _, isNothing := v.(nothingSentinel); isNothing {
				omit = true
			}
			b.WriteString(op.attrStatics[i])
			b.WriteString(escapeAttr(fmt.Sprint(v)))
		}
		b.WriteString(op.attrStatics[len(op.attrStatics)-1])
		if omit {
			return "", nil
		}
		value := b.String()
		if currentInst != nil {
			currentInst.SetAttribute(op.attrName, value)
		}
		return fmt.Sprintf(` %s="%s"`, op.attrName, value), nil
	}
}
