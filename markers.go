package ssr

import "fmt"

// Wire-format hydration markers. These are the only comment strings core
// ever writes into rendered output; a companion client-side library parses
// them back out during hydration. Never change their shape without a
// corresponding client-side change.

// openTemplatePart returns the opening marker for a top-level or nested
// hydratable template instance, carrying the template's digest so the
// client can verify it is hydrating against the same compiled template.
func openTemplatePart(digest string) string {
	return fmt.Sprintf("<!--lit-part %s-->", digest)
}

// openPartBare is the opening marker used for a child-part whose content
// is not itself a hydratable template (a plain value, an empty/nothing
// value, an iterable, or a directive result).
const openPartBare = "<!--lit-part-->"

const closePart = "<!--/lit-part-->"

func nodeMarker(nodeIndex int) string {
	return fmt.Sprintf("<!--lit-node %d-->", nodeIndex)
}

const deferHydrationAttr = "defer-hydration"

func shadowRootOpenTag(mode string, delegatesFocus bool) string {
	tag := fmt.Sprintf(`<template shadowroot="%s" shadowrootmode="%s"`, mode, mode)
	if delegatesFocus {
		tag += " shadowrootdelegatesfocus"
	}
	return tag + ">"
}

const shadowRootCloseTag = "</template>"
