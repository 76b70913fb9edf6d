package errors

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Structure Errors (T001-T019)
	// ============================================

	"T001": {
		Category:   CategoryStructure,
		Message:    "Stale or unknown node key",
		Suggestion: "The node was removed or never created by this tree. Keep NodeIDs, not NodeKeys, across remounts.",
	},
	"T002": {
		Category:   CategoryFocus,
		Message:    "Node is not focusable",
		Suggestion: "Mark the node focusable and enabled before focusing it.",
	},
	"T003": {
		Category:   CategoryStructure,
		Message:    "Marker is not a child of the parent",
		Suggestion: "Pass the zero NodeKey to append, or a current child of the parent.",
	},
	"T004": {
		Category:   CategoryStructure,
		Message:    "Insertion would create a cycle",
		Suggestion: "A node cannot be inserted into its own subtree.",
	},
	"T005": {
		Category:   CategoryStructure,
		Message:    "Root node cannot be inserted",
		Suggestion: "Insert children under Tree.Root() instead.",
	},
	"T006": {
		Category:   CategoryFocus,
		Message:    "Unknown node id",
		Suggestion: "No mounted node claims this id. Check the view's ID option.",
	},
	"T007": {
		Category:   CategoryView,
		Message:    "Duplicate key in keyed list",
		Suggestion: "Every item rendered by Each must return a distinct key.",
	},

	// ============================================
	// Config Errors (T020-T039)
	// ============================================

	"T020": {
		Category:   CategoryConfig,
		Message:    "Invalid config file",
		Suggestion: "Run `tessel config init` to write a valid tessel.json.",
	},
	"T021": {
		Category: CategoryConfig,
		Message:  "Config value out of range",
	},

	// ============================================
	// Backend Errors (T040-T059)
	// ============================================

	"T040": {
		Category:   CategoryBackend,
		Message:    "Terminal backend failed",
		Suggestion: "Make sure stdin and stdout are attached to a terminal.",
	},
	"T041": {
		Category:   CategoryBackend,
		Message:    "Devtools server failed",
		Suggestion: "Check that devtools.addr is free.",
	},
}

// Lookup returns the template for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
