package ssr

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/go-lit/ssr/internal/cache"
)

// compileSeed is a process-wide constant used to build the internal
// sentinel token compile embeds between static fragments before parsing.
// It never reaches rendered output — it exists only to survive an HTML
// parse round-trip intact and distinguishable from user content — so it
// does not need to be random across processes, only distinct from
// anything a static HTML fragment would plausibly contain.
const compileSeed = "go-lit-ssr-7f3c1a"

func sentinelToken(hole int) string {
	return fmt.Sprintf("\x00lit$%s$%d\x00", compileSeed, hole)
}

// processCache is the process-wide opcode cache described in
// SPEC_FULL.md's MODULE LAYOUT (internal/cache): it is keyed by digest
// rather than by *TemplateHandle, so two handles that happen to share the
// exact same statics (e.g. a template re-created per call instead of held
// in a package-level var, the common mistake NewHandle's doc comment warns
// against) still only pay the HTML-parse cost once. Each TemplateHandle's
// own sync.Once remains the fast path for the overwhelmingly common case
// of a stable, package-level handle; this cache only matters on a miss.
var processCache = cache.New()

// EnablePersistentCache adds a SQLite-backed tier to the process-wide
// opcode cache at path, so compiled templates survive a process restart.
// It is safe to call at most once, typically during process startup; see
// cmd/demo for an example.
func EnablePersistentCache(path string) error {
	return processCache.Open(path)
}

// getOrCompile returns the cached Opcodes for h, compiling once (the
// first caller to reach the sync.Once body pays the parse cost; every
// later call, and every concurrent call, gets the same result). A miss
// also consults, and populates, the process-wide cache keyed by digest.
func getOrCompile(h *TemplateHandle, statics []string, hydratable bool) (*Opcodes, error) {
	h.once.Do(func() {
		digest := Digest(statics)
		key := digest
		if hydratable {
			key = "h:" + digest
		} else {
			key = "s:" + digest
		}

		entry, err := processCache.GetOrCompute(context.Background(), key, func() (*cache.Entry, error) {
			ops, err := Compile(statics, hydratable)
			if err != nil {
				return nil, err
			}
			blob, err := ops.MarshalBinary()
			if err != nil {
				return nil, err
			}
			return &cache.Entry{Digest: digest, Opcodes: blob}, nil
		})
		if err != nil {
			h.compileErr = err
			return
		}

		ops := &Opcodes{}
		if err := ops.UnmarshalBinary(entry.Opcodes); err != nil {
			h.compileErr = err
			return
		}
		h.opcodes = ops
	})
	return h.opcodes, h.compileErr
}

// Compile parses statics (joined with an internal sentinel marking each
// hole) once with golang.org/x/net/html and walks the resulting tree to
// produce an Opcodes list. Its result depends on statics, hydratable and
// opts, and on which tags are registered as custom elements at the time of
// the call. It is normally only called once per TemplateHandle, via
// getOrCompile.
func Compile(statics []string, hydratable bool, opts ...CompileOption) (*Opcodes, error) {
	var o compileOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.minifyStatics {
		minified, err := applyMinify(statics)
		if err != nil {
			return nil, err
		}
		statics = minified
	}

	holes := scanHoles(statics)
	joined := joinWithSentinels(statics, holes)

	nodes, err := parseFragment(joined)
	if err != nil {
		return nil, &CompileError{Kind: KindParseError, Detail: err.Error()}
	}

	c := &compiler{
		hydratable:    hydratable,
		keepEmptyHead: strings.Contains(strings.ToLower(joined), "<head"),
	}
	for _, n := range nodes {
		if err := c.walk(n); err != nil {
			return nil, err
		}
	}
	c.flushText()

	ops := &Opcodes{ops: c.ops, valueCount: len(statics) - 1}
	ops.singleExpression = isSingleExpression(ops.ops)
	return ops, nil
}

func isSingleExpression(ops []opcode) bool {
	if len(ops) != 1 {
		return false
	}
	return ops[0].kind == opChildPart
}

// --- hole classification (scanner) -----------------------------------

type holeCategory int

const (
	holeChild holeCategory = iota
	holeRawText
	holeElementPart
	holeAttrValue
)

type holeCtx struct {
	category  holeCategory
	attrName  string
	attrOcc   int
	rawTag    string
}

type scanMode int

const (
	modeText scanMode = iota
	modeRawText
	modeComment
	modeTagName
	modeBeforeAttrName
	modeAttrName
	modeAfterAttrName
	modeBeforeAttrValue
	modeAttrValueDQ
	modeAttrValueSQ
	modeAttrValueUnquoted
)

type scanState struct {
	mode         scanMode
	tagNameBuf   string
	pendingTag   string
	attrName     string
	rawTextTag   string
	occurrence   int
}

func isRawTextTagName(tag string) bool {
	switch tag {
	case "script", "style", "title", "textarea":
		return true
	}
	return false
}

func isTagNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'
}

func isWS(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// advance runs the simplified tokenizer state machine over one static
// fragment, carrying state in from (and returning state out to) the
// holes on either side of it. It only needs to be correct for
// well-formed HTML with a hole at the boundary, since that is the only
// shape a template's static strings can produce.
func advance(st scanState, s string) scanState {
	n := len(s)
	i := 0
	for i < n {
		c := s[i]
		switch st.mode {
		case modeText:
			if c == '<' {
				if strings.HasPrefix(s[i:], "<!--") {
					st.mode = modeComment
					i += 4
					continue
				}
				if i+1 < n && s[i+1] == '/' {
					j := strings.IndexByte(s[i:], '>')
					if j < 0 {
						i = n
						continue
					}
					i += j + 1
					continue
				}
				st.mode = modeTagName
				st.tagNameBuf = ""
				i++
				continue
			}
			i++
		case modeRawText:
			idx := indexFoldClosingTag(s[i:], st.rawTextTag)
			if idx < 0 {
				i = n
				continue
			}
			i += idx
			j := strings.IndexByte(s[i:], '>')
			if j < 0 {
				i = n
				continue
			}
			i += j + 1
			st.mode = modeText
			st.rawTextTag = ""
		case modeComment:
			idx := strings.Index(s[i:], "-->")
			if idx < 0 {
				i = n
				continue
			}
			i += idx + 3
			st.mode = modeText
		case modeTagName:
			if isTagNameChar(c) {
				st.tagNameBuf += string(c)
				i++
				continue
			}
			st.pendingTag = strings.ToLower(st.tagNameBuf)
			if c == '>' {
				if isRawTextTagName(st.pendingTag) {
					st.rawTextTag = st.pendingTag
					st.mode = modeRawText
				} else {
					st.mode = modeText
				}
				i++
				continue
			}
			st.mode = modeBeforeAttrName
		case modeBeforeAttrName:
			if c == '>' {
				if isRawTextTagName(st.pendingTag) {
					st.rawTextTag = st.pendingTag
					st.mode = modeRawText
				} else {
					st.mode = modeText
				}
				i++
				continue
			}
			if c == '/' {
				i++
				continue
			}
			if isWS(c) {
				i++
				continue
			}
			st.mode = modeAttrName
			st.attrName = ""
		case modeAttrName:
			if c == '=' {
				st.mode = modeBeforeAttrValue
				i++
				continue
			}
			if isWS(c) || c == '>' || c == '/' {
				st.mode = modeAfterAttrName
				continue
			}
			st.attrName += string(c)
			i++
		case modeAfterAttrName:
			if c == '=' {
				st.mode = modeBeforeAttrValue
				i++
				continue
			}
			if c == '>' {
				if isRawTextTagName(st.pendingTag) {
					st.rawTextTag = st.pendingTag
					st.mode = modeRawText
				} else {
					st.mode = modeText
				}
				i++
				continue
			}
			if isWS(c) {
				i++
				continue
			}
			st.mode = modeAttrName
			st.attrName = ""
		case modeBeforeAttrValue:
			st.occurrence++
			if c == '"' {
				st.mode = modeAttrValueDQ
				i++
				continue
			}
			if c == '\'' {
				st.mode = modeAttrValueSQ
				i++
				continue
			}
			st.mode = modeAttrValueUnquoted
		case modeAttrValueDQ:
			if c == '"' {
				st.mode = modeBeforeAttrName
				i++
				continue
			}
			i++
		case modeAttrValueSQ:
			if c == '\'' {
				st.mode = modeBeforeAttrName
				i++
				continue
			}
			i++
		case modeAttrValueUnquoted:
			if isWS(c) {
				st.mode = modeBeforeAttrName
				i++
				continue
			}
			if c == '>' {
				if isRawTextTagName(st.pendingTag) {
					st.rawTextTag = st.pendingTag
					st.mode = modeRawText
				} else {
					st.mode = modeText
				}
				i++
				continue
			}
			i++
		}
	}
	return st
}

func indexFoldClosingTag(s, tag string) int {
	needle := "</" + tag
	return strings.Index(strings.ToLower(s), needle)
}

// scanHoles classifies every hole between consecutive static fragments.
func scanHoles(statics []string) []holeCtx {
	holes := make([]holeCtx, 0, len(statics)-1)
	st := scanState{}
	for i := 0; i < len(statics); i++ {
		st = advance(st, statics[i])
		if i == len(statics)-1 {
			break
		}
		switch st.mode {
		case modeText, modeComment:
			holes = append(holes, holeCtx{category: holeChild})
		case modeRawText:
			holes = append(holes, holeCtx{category: holeRawText, rawTag: st.rawTextTag})
		case modeBeforeAttrName, modeAfterAttrName:
			holes = append(holes, holeCtx{category: holeElementPart})
		case modeAttrName:
			// Dynamic attribute-name characters: not a case the
			// surrounding directive/binding model supports. Treated as
			// an element-part: a server-only template then fails with
			// KindForbiddenElementPart, and a hydratable one consumes the
			// value without rendering it.
			holes = append(holes, holeCtx{category: holeElementPart})
		default: // attribute value states
			holes = append(holes, holeCtx{
				category: holeAttrValue,
				attrName: st.attrName,
				attrOcc:  st.occurrence,
			})
		}
	}
	return holes
}

func joinWithSentinels(statics []string, holes []holeCtx) string {
	var b strings.Builder
	for i, s := range statics {
		b.WriteString(s)
		if i == len(holes) {
			continue
		}
		h := holes[i]
		switch h.category {
		case holeChild:
			b.WriteString("<!--")
			b.WriteString(sentinelToken(i))
			b.WriteString("-->")
		case holeRawText, holeAttrValue:
			b.WriteString(sentinelToken(i))
		case holeElementPart:
			b.WriteByte(' ')
			b.WriteString(sentinelToken(i))
		}
	}
	return b.String()
}

// parseFragment parses joined as template content: any sequence of
// elements and text is legal, matching how a template-literal's content
// is never itself a full document (the case where it literally is a full
// HTML document, i.e. begins with <!doctype html> or <html>, is handled
// by parsing as a full document instead so <head>/<body> placement rules
// apply).
func parseFragment(joined string) ([]*html.Node, error) {
	trimmed := strings.TrimSpace(joined)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(joined))
		if err != nil {
			return nil, err
		}
		return []*html.Node{doc}, nil
	}
	context := &html.Node{Type: html.ElementNode, Data: "template", DataAtom: atom.Template}
	return html.ParseFragment(strings.NewReader(joined), context)
}

// renderNode serializes a single node (detached from its tree, with no
// siblings) via golang.org/x/net/html's own renderer, so a DoctypeNode
// comes back out exactly as the library's HTML5 serialization rules
// dictate (e.g. "<!DOCTYPE html>", or the longer PUBLIC/SYSTEM form for a
// legacy doctype) rather than a hand-rolled approximation.
func renderNode(n *html.Node) string {
	var buf bytes.Buffer
	detached := &html.Node{Type: n.Type, Data: n.Data, DataAtom: n.DataAtom, Attr: n.Attr}
	if err := html.Render(&buf, detached); err != nil {
		return "<!DOCTYPE " + n.Data + ">"
	}
	return buf.String()
}

// --- tree walk ---------------------------------------------------------

type compiler struct {
	ops             []opcode
	hydratable      bool
	nodeIndex       int
	textBuf         strings.Builder
	customElemDepth int
	// keepEmptyHead is true when the source template text itself contained
	// a <head> tag. html.Parse silently inserts an empty <head> element
	// into a full-document parse when the source omits one (HTML5 tree-
	// construction rules); that synthetic element must not be serialized
	// back out, since it was never part of the template.
	keepEmptyHead bool
}

func (c *compiler) flushText() {
	if c.textBuf.Len() == 0 {
		return
	}
	c.ops = append(c.ops, opcode{kind: opText, text: c.textBuf.String()})
	c.textBuf.Reset()
}

func (c *compiler) emit(op opcode) {
	c.flushText()
	c.ops = append(c.ops, op)
}

func (c *compiler) walk(n *html.Node) error {
	switch n.Type {
	case html.DocumentNode:
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			if err := c.walk(ch); err != nil {
				return err
			}
		}
	case html.DoctypeNode:
		c.textBuf.WriteString(renderNode(n))
	case html.CommentNode:
		if hole, ok := parseChildSentinel(n.Data); ok {
			c.nodeIndex++
			useInst := c.customElemDepth > 0
			c.emit(opcode{kind: opChildPart, nodeIndex: c.nodeIndex - 1, useCustomElementInstance: useInst})
			_ = hole
			return nil
		}
		c.textBuf.WriteString("<!--")
		c.textBuf.WriteString(n.Data)
		c.textBuf.WriteString("-->")
	case html.TextNode:
		return c.walkText(n.Data, n.Parent)
	case html.ElementNode:
		return c.walkElement(n)
	default:
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			if err := c.walk(ch); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseChildSentinel(data string) (int, bool) {
	prefix := "\x00lit$" + compileSeed + "$"
	if !strings.HasPrefix(data, prefix) {
		return 0, false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(data, prefix), "\x00")
	var idx int
	if _, err := fmt.Sscanf(rest, "%d", &idx); err != nil {
		return 0, false
	}
	return idx, true
}

// walkText scans a text node's content for sentinels. Ordinary text
// (including RCDATA/raw-text content, where x/net/html surfaces bindings
// as plain text rather than comment nodes) can contain a bare sentinel
// token; for raw-text parents this is the expected, supported shape.
func (c *compiler) walkText(data string, parent *html.Node) error {
	tagName := ""
	if parent != nil && parent.Type == html.ElementNode {
		tagName = parent.Data
	}
	rawText := isRawTextTagName(tagName)

	prefix := "\x00lit$" + compileSeed + "$"
	for {
		idx := strings.Index(data, prefix)
		if idx < 0 {
			c.textBuf.WriteString(data)
			return nil
		}
		end := strings.Index(data[idx+len(prefix):], "\x00")
		if end < 0 {
			c.textBuf.WriteString(data)
			return nil
		}
		end += idx + len(prefix)
		numStr := data[idx+len(prefix) : end]
		var holeIdx int
		if _, err := fmt.Sscanf(numStr, "%d", &holeIdx); err != nil {
			c.textBuf.WriteString(data)
			return nil
		}

		c.textBuf.WriteString(data[:idx])

		if !rawText {
			// A bare token outside raw text that wasn't caught as a
			// comment/element-part/attribute-value hole; treat like an
			// ordinary child part.
			c.nodeIndex++
			c.emit(opcode{kind: opChildPart, nodeIndex: c.nodeIndex - 1, useCustomElementInstance: c.customElemDepth > 0})
			data = data[end+1:]
			continue
		}

		executable := tagName == "script"
		if executable {
			return &CompileError{Kind: KindBindingInScript}
		}
		if tagName == "style" {
			return &CompileError{Kind: KindBindingInStyle}
		}
		if c.hydratable {
			return &CompileError{Kind: KindHydratableRawTextBinding, Detail: "in <" + tagName + ">"}
		}
		c.nodeIndex++
		c.emit(opcode{kind: opChildPart, nodeIndex: c.nodeIndex - 1})
		data = data[end+1:]
	}
}

func (c *compiler) walkElement(n *html.Node) error {
	tagName := n.Data

	if tagName == "head" && n.DataAtom == atom.Head && !c.keepEmptyHead && n.FirstChild == nil {
		// Synthetic <head> the full-document parser inserted because the
		// template source never wrote one; see keepEmptyHead's doc comment.
		return nil
	}

	_, isCustom := globalCustomElements.Get(tagName)
	isSlot := tagName == "slot"

	if isSlot {
		return c.walkSlot(n)
	}

	if slotAttr, ok := attrValue(n, "slot"); ok && n.Parent != nil {
		return c.walkSlottedElement(n, slotAttr)
	}

	if isCustom {
		return c.walkCustomElement(n, tagName)
	}
	return c.walkOrdinaryElement(n, tagName)
}

func attrValue(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// classifyAttrs walks n's attribute list (already parsed by x/net/html,
// with sentinel tokens embedded verbatim in names/values) and returns the
// static attributes plus the ops needed for dynamic ones, without
// emitting anything yet. useInst is copied into every attribute-part op's
// useCustomElementInstance; forCustomElement is not consulted. Static
// attributes are always returned, and the caller decides whether to write
// them as literal text or hand them to custom-element-open.
func (c *compiler) classifyAttrs(n *html.Node, tagName string, forCustomElement, useInst bool) (staticAttrs []htmlAttr, boundCount int, dynamicOps []opcode, err error) {
	elemPartPrefix := "\x00lit$" + compileSeed + "$"

	for _, a := range n.Attr {
		name := a.Key
		val := a.Val

		if strings.HasPrefix(name, elemPartPrefix) {
			if idx, ok := parseChildSentinel(name); ok {
				if !c.hydratable {
					return nil, 0, nil, &CompileError{Kind: KindForbiddenElementPart, Detail: "on <" + tagName + ">"}
				}
				dynamicOps = append(dynamicOps, opcode{kind: opElementPart, nodeIndex: idx})
				boundCount++
				continue
			}
		}

		if statics, any := splitAttrValue(val); any {
			kind, cleanName := classifyAttrName(name)
			if !c.hydratable {
				switch kind {
				case attrKindProperty:
					return nil, 0, nil, &CompileError{Kind: KindForbiddenPropertyBinding, Detail: cleanName + " on <" + tagName + ">"}
				case attrKindEvent:
					return nil, 0, nil, &CompileError{Kind: KindForbiddenEventBinding, Detail: cleanName + " on <" + tagName + ">"}
				}
			}
			boundCount++
			dynamicOps = append(dynamicOps, opcode{
				kind:                     opAttributePart,
				attrName:                 cleanName,
				attrKind:                 kind,
				attrStatics:              statics,
				tagName:                  tagName,
				useCustomElementInstance: useInst,
			})
			continue
		}

		staticAttrs = append(staticAttrs, htmlAttr{Name: name, Value: val})
	}

	return staticAttrs, boundCount, dynamicOps, nil
}

func classifyAttrName(name string) (attrKind, string) {
	if name == "" {
		return attrKindAttribute, name
	}
	switch name[0] {
	case '.':
		return attrKindProperty, name[1:]
	case '?':
		return attrKindBoolean, name[1:]
	case '@':
		return attrKindEvent, name[1:]
	default:
		return attrKindAttribute, name
	}
}

// splitAttrValue splits an attribute value around every sentinel token it
// contains (the HTML parser has already merged all of an attribute's
// literal text, tokens included, into one Attr.Val). It returns the
// static text pieces in order — len(statics) == number of tokens + 1 —
// and whether any token was found at all.
func splitAttrValue(val string) (statics []string, any bool) {
	prefix := "\x00lit$" + compileSeed + "$"
	rest := val
	for {
		i := strings.Index(rest, prefix)
		if i < 0 {
			statics = append(statics, rest)
			return statics, any
		}
		end := strings.Index(rest[i+len(prefix):], "\x00")
		if end < 0 {
			statics = append(statics, rest)
			return statics, any
		}
		end += i + len(prefix)
		statics = append(statics, rest[:i])
		rest = rest[end+1:]
		any = true
	}
}

func (c *compiler) walkOrdinaryElement(n *html.Node, tagName string) error {
	useInst := c.customElemDepth > 0
	staticAttrs, boundCount, dynOps, err := c.classifyAttrs(n, tagName, false, useInst)
	if err != nil {
		return err
	}

	c.nodeIndex++
	idx := c.nodeIndex - 1
	if boundCount > 0 {
		c.emit(opcode{kind: opPossibleNodeMarker, nodeIndex: idx, boundAttrCount: boundCount})
	}

	c.textBuf.WriteString("<" + tagName)
	for _, a := range staticAttrs {
		c.textBuf.WriteString(" " + a.Name)
		if hasRealValue(n, a.Name) {
			c.textBuf.WriteString(`="` + escapeAttr(a.Value) + `"`)
		}
	}
	for _, op := range dynOps {
		c.emit(op)
	}
	c.textBuf.WriteString(">")

	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if err := c.walk(ch); err != nil {
			return err
		}
	}

	if !isVoidElement(tagName) {
		c.textBuf.WriteString("</" + tagName + ">")
	}
	return nil
}

// hasRealValue distinguishes a boolean-style static attribute (no `=` at
// all in the source) from one with an explicit, possibly empty, value.
// x/net/html itself doesn't preserve that distinction once parsed, so we
// conservatively always emit `="value"`; kept as a named seam in case a
// future revision wants to special-case valueless boolean attributes.
func hasRealValue(n *html.Node, name string) bool {
	return true
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

func isVoidElement(tag string) bool {
	return voidElements[tag]
}

func (c *compiler) walkCustomElement(n *html.Node, tagName string) error {
	c.nodeIndex++
	idx := c.nodeIndex - 1

	c.customElemDepth++
	useInst := true
	staticAttrs, boundCount, dynOps, err := c.classifyAttrs(n, tagName, true, useInst)
	if err != nil {
		c.customElemDepth--
		return err
	}

	// Always emitted for a known custom element, regardless of bound
	// attribute count, so the executor can emit its <!--lit-node N-->
	// marker when it is rendered inside another element's shadow root.
	c.emit(opcode{kind: opPossibleNodeMarker, nodeIndex: idx, boundAttrCount: boundCount})

	c.emit(opcode{kind: opCustomElementOpen, nodeIndex: idx, tagName: tagName, staticAttrs: staticAttrs})
	for _, op := range dynOps {
		c.emit(op)
	}
	c.emit(opcode{kind: opCustomElementAttributes, nodeIndex: idx, tagName: tagName})
	c.textBuf.WriteString(">")
	c.emit(opcode{kind: opCustomElementShadow, nodeIndex: idx})

	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if err := c.walk(ch); err != nil {
			return err
		}
	}

	c.textBuf.WriteString("</" + tagName + ">")
	c.emit(opcode{kind: opCustomElementClose, nodeIndex: idx})
	c.customElemDepth--
	return nil
}

func (c *compiler) walkSlot(n *html.Node) error {
	name, _ := attrValue(n, "name")
	c.emit(opcode{kind: opSlotElementOpen, slotName: name})
	if err := c.walkOrdinaryElement(n, "slot"); err != nil {
		return err
	}
	c.emit(opcode{kind: opSlotElementClose})
	return nil
}

func (c *compiler) walkSlottedElement(n *html.Node, slotName string) error {
	c.emit(opcode{kind: opSlottedElementOpen, slotName: slotName})
	tagName := n.Data
	var err error
	if _, isCustom := globalCustomElements.Get(tagName); isCustom {
		err = c.walkCustomElement(n, tagName)
	} else {
		err = c.walkOrdinaryElement(n, tagName)
	}
	if err != nil {
		return err
	}
	c.emit(opcode{kind: opSlottedElementClose})
	return nil
}
