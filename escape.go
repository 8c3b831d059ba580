package ssr

import "strings"

// textEscapeReplacer and attrEscapeReplacer both cover the same fixed
// five-character escape set, for rendered text and attribute values
// respectively: '&', '<', '>', '"', '\''.
var textEscapeReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

var attrEscapeReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape escapes a string for use as HTML text content.
func Escape(s string) string {
	return textEscapeReplacer.Replace(s)
}

// escapeAttr escapes a string for use inside a double-quoted HTML
// attribute value.
func escapeAttr(s string) string {
	return attrEscapeReplacer.Replace(s)
}
