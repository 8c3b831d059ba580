package ssr

// ariaMirrors is the full element-internals ARIA-mixin property-to-
// attribute mirroring table (SPEC_FULL.md supplemented feature #4: the
// spec names this set as "finite and enumerated by the companion
// polyfill" without listing members; this is the complete ARIAMixin set
// the original source enumerates). A component implementing ARIAHost
// returns a subset of these property names from ARIAProperties(); every
// one present is mirrored to its aria-* attribute and paired with an
// internal marker attribute the client can use to strip the server-
// rendered mirror once element internals take over after hydration.
var ariaMirrors = map[string]string{
	"ariaAtomic":          "aria-atomic",
	"ariaAutoComplete":    "aria-autocomplete",
	"ariaBusy":            "aria-busy",
	"ariaChecked":         "aria-checked",
	"ariaColCount":        "aria-colcount",
	"ariaColIndex":        "aria-colindex",
	"ariaColSpan":         "aria-colspan",
	"ariaCurrent":         "aria-current",
	"ariaDescription":     "aria-description",
	"ariaDisabled":        "aria-disabled",
	"ariaExpanded":        "aria-expanded",
	"ariaHasPopup":        "aria-haspopup",
	"ariaHidden":          "aria-hidden",
	"ariaInvalid":         "aria-invalid",
	"ariaKeyShortcuts":    "aria-keyshortcuts",
	"ariaLabel":           "aria-label",
	"ariaLive":            "aria-live",
	"ariaModal":           "aria-modal",
	"ariaMultiline":       "aria-multiline",
	"ariaMultiSelectable": "aria-multiselectable",
	"ariaOrientation":     "aria-orientation",
	"ariaPlaceholder":     "aria-placeholder",
	"ariaPosInSet":        "aria-posinset",
	"ariaPressed":         "aria-pressed",
	"ariaReadOnly":        "aria-readonly",
	"ariaRelevant":        "aria-relevant",
	"ariaRequired":        "aria-required",
	"ariaRoleDescription": "aria-roledescription",
	"ariaRowCount":        "aria-rowcount",
	"ariaRowIndex":        "aria-rowindex",
	"ariaRowSpan":         "aria-rowspan",
	"ariaSelected":        "aria-selected",
	"ariaSetSize":         "aria-setsize",
	"ariaSort":            "aria-sort",
	"ariaValueMax":        "aria-valuemax",
	"ariaValueMin":        "aria-valuemin",
	"ariaValueNow":        "aria-valuenow",
	"ariaValueText":       "aria-valuetext",
}

// internalMarkerAttr returns the paired marker attribute name for a
// server-mirrored ARIA attribute, empty-valued, so the client can find
// and remove the server's mirror once ElementInternals takes ownership.
func internalMarkerAttr(ariaProp string) string {
	return "data-lit-internal-" + ariaMirrors[ariaProp]
}
