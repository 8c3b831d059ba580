package ssr

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
)

// opKind enumerates the fixed set of instructions a compiled template's
// Opcodes list is made of. The compiler (compile.go) produces them; the
// executor (exec.go) consumes them.
type opKind int

const (
	opText opKind = iota
	opChildPart
	opAttributePart
	opElementPart
	opPossibleNodeMarker
	opCustomElementOpen
	opCustomElementAttributes
	opCustomElementShadow
	opCustomElementClose
	opSlotElementOpen
	opSlotElementClose
	opSlottedElementOpen
	opSlottedElementClose
)

func (k opKind) String() string {
	switch k {
	case opText:
		return "TEXT"
	case opChildPart:
		return "CHILD_PART"
	case opAttributePart:
		return "ATTRIBUTE_PART"
	case opElementPart:
		return "ELEMENT_PART"
	case opPossibleNodeMarker:
		return "POSSIBLE_NODE_MARKER"
	case opCustomElementOpen:
		return "CUSTOM_ELEMENT_OPEN"
	case opCustomElementAttributes:
		return "CUSTOM_ELEMENT_ATTRIBUTES"
	case opCustomElementShadow:
		return "CUSTOM_ELEMENT_SHADOW"
	case opCustomElementClose:
		return "CUSTOM_ELEMENT_CLOSE"
	case opSlotElementOpen:
		return "SLOT_ELEMENT_OPEN"
	case opSlotElementClose:
		return "SLOT_ELEMENT_CLOSE"
	case opSlottedElementOpen:
		return "SLOTTED_ELEMENT_OPEN"
	case opSlottedElementClose:
		return "SLOTTED_ELEMENT_CLOSE"
	default:
		return "UNKNOWN"
	}
}

// attrKind classifies a bound attribute by its lit-html-style name prefix.
type attrKind int

const (
	attrKindAttribute attrKind = iota // plain name="..."
	attrKindProperty                 // .name=...
	attrKindBoolean                  // ?name=...
	attrKindEvent                    // @name=...
)

// htmlAttr is a plain, fully-static name/value pair, used for a custom
// element's static attributes (known entirely at compile time).
type htmlAttr struct {
	Name  string
	Value string
}

// opcode is a single compiled instruction. Only the fields relevant to
// Kind are populated; the rest are zero.
type opcode struct {
	kind opKind

	// opText
	text string

	// opChildPart, opElementPart, opPossibleNodeMarker,
	// opCustomElement{Open,Attributes,Shadow,Close}
	nodeIndex int

	// opChildPart, opAttributePart: true if a custom-element instance is
	// active (this element is one, or an ancestor is) and property/
	// boolean bindings should therefore reach it.
	useCustomElementInstance bool

	// opAttributePart
	attrName    string
	attrKind    attrKind
	attrStatics []string // len = value count + 1
	tagName     string   // element this attribute lives on

	// opPossibleNodeMarker
	boundAttrCount int

	// opCustomElementOpen
	staticAttrs []htmlAttr

	// opSlotElementOpen, opSlottedElementOpen
	slotName string
}

// Opcodes is the immutable, cacheable compilation output for one template
// handle's static shape. It never references dynamic values; the same
// Opcodes is replayed against any number of different value sets.
type Opcodes struct {
	ops []opcode

	// valueCount is the number of dynamic values this template expects,
	// i.e. len(Statics)-1. Render validates tr.Values against it.
	valueCount int

	// singleExpression is set when the entire template is exactly one
	// top-level child part and nothing else (the "html`${x}`" case). It is
	// recorded, cached and shown by Dump; executeTemplate does not read it
	// and runs its general dispatch loop for such templates as well, so it
	// has no effect on output.
	singleExpression bool
}

// wireOpcode mirrors opcode with exported fields so gob, which cannot see
// unexported struct fields, has something to encode. MarshalBinary and
// UnmarshalBinary translate to and from it; nothing outside this file
// needs to know the wire shape exists.
type wireOpcode struct {
	Kind                     opKind
	Text                     string
	NodeIndex                int
	UseCustomElementInstance bool
	AttrName                 string
	AttrKind                 attrKind
	AttrStatics              []string
	TagName                  string
	BoundAttrCount           int
	StaticAttrs              []htmlAttr
	SlotName                 string
}

type wireOpcodes struct {
	Ops              []wireOpcode
	ValueCount       int
	SingleExpression bool
}

// MarshalBinary lets Opcodes round-trip through the persistent cache tier
// (internal/cache), which only ever sees bytes — it never needs to know an
// Opcodes' internal field layout.
func (o *Opcodes) MarshalBinary() ([]byte, error) {
	w := wireOpcodes{Ops: make([]wireOpcode, len(o.ops)), ValueCount: o.valueCount, SingleExpression: o.singleExpression}
	for i, op := range o.ops {
		w.Ops[i] = wireOpcode{
			Kind: op.kind, Text: op.text, NodeIndex: op.nodeIndex,
			UseCustomElementInstance: op.useCustomElementInstance,
			AttrName:                 op.attrName, AttrKind: op.attrKind, AttrStatics: op.attrStatics,
			TagName: op.tagName, BoundAttrCount: op.boundAttrCount,
			StaticAttrs: op.staticAttrs, SlotName: op.slotName,
		}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary is the inverse of MarshalBinary.
func (o *Opcodes) UnmarshalBinary(data []byte) error {
	var w wireOpcodes
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	o.ops = make([]opcode, len(w.Ops))
	for i, op := range w.Ops {
		o.ops[i] = opcode{
			kind: op.Kind, text: op.Text, nodeIndex: op.NodeIndex,
			useCustomElementInstance: op.UseCustomElementInstance,
			attrName:                 op.AttrName, attrKind: op.AttrKind, attrStatics: op.AttrStatics,
			tagName: op.TagName, boundAttrCount: op.BoundAttrCount,
			staticAttrs: op.StaticAttrs, slotName: op.SlotName,
		}
	}
	o.valueCount = w.ValueCount
	o.singleExpression = w.SingleExpression
	return nil
}

// Dump writes a human-readable listing of o's instructions to w, in the
// plain fmt.Printf style cmd/ssrdump uses to print a compiled template
// without requiring any structured-logging dependency.
func (o *Opcodes) Dump(w io.Writer) {
	fmt.Fprintf(w, "values: %d  singleExpression: %v\n", o.valueCount, o.singleExpression)
	for i, op := range o.ops {
		switch op.kind {
		case opText:
			fmt.Fprintf(w, "%3d  %-24s %q\n", i, op.kind, op.text)
		case opAttributePart:
			fmt.Fprintf(w, "%3d  %-24s <%s> %s (kind=%d statics=%v)\n", i, op.kind, op.tagName, op.attrName, op.attrKind, op.attrStatics)
		case opCustomElementOpen:
			fmt.Fprintf(w, "%3d  %-24s <%s> static=%v\n", i, op.kind, op.tagName, op.staticAttrs)
		case opPossibleNodeMarker:
			fmt.Fprintf(w, "%3d  %-24s node=%d boundAttrs=%d\n", i, op.kind, op.nodeIndex, op.boundAttrCount)
		case opSlotElementOpen, opSlottedElementOpen:
			fmt.Fprintf(w, "%3d  %-24s slot=%q\n", i, op.kind, op.slotName)
		default:
			fmt.Fprintf(w, "%3d  %-24s node=%d\n", i, op.kind, op.nodeIndex)
		}
	}
}
