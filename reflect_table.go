package ssr

// propertyReflections is the fixed property-name -> attribute-name table
// used when a property binding (`.name=${x}`) needs to also be reflected
// to a visible attribute. It applies regardless of which tag the
// property is bound on; see valueReflectingTags below for the one
// property whose reflection additionally depends on tag name.
//
// This table is intentionally small and leaky in the same way the spec
// it's grounded on is leaky: a reflected property emits attribute output
// even on an element where that property isn't actually declared (e.g.
// `<p .className=${x}>`), because reflectedAttrFor decides whether to
// reflect from the property name alone, not from the target element's
// actual property set.
var propertyReflections = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

var valueReflectingTags = map[string]bool{
	"input":    true,
	"option":   true,
	"select":   true,
	"textarea": true,
}

// reflectedAttrFor returns the attribute name a property binding on
// tagName should also be written as, if any.
func reflectedAttrFor(tagName, propName string) (string, bool) {
	if propName == "value" && valueReflectingTags[tagName] {
		return "value", true
	}
	if attr, ok := propertyReflections[propName]; ok {
		return attr, true
	}
	return "", false
}
