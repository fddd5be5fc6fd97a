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
	// Runtime Errors (E001-E009)
	// ============================================

	"E001": {
		Category:   CategoryRuntime,
		Message:    "Unrecognised element type",
		Suggestion: "Check the tag spelling or register the view with widget.Register before rendering.",
	},
	"E002": {
		Category:   CategoryRuntime,
		Message:    "Element has no type",
		Suggestion: "Create elements with element.Create and a non-nil type.",
	},
	"E003": {
		Category:   CategoryRuntime,
		Message:    "Root has neither a container nor a key",
		Suggestion: "Pass a container view, or a root key when rendering a detached tree.",
	},
	"E004": {
		Category: CategoryRuntime,
		Message:  "Component render failed",
	},
	"E005": {
		Category:   CategoryRuntime,
		Message:    "Invalid child value",
		Suggestion: "Children must be elements, portals, strings, numbers, slices of those, nil or booleans.",
	},

	// ============================================
	// Config Errors (E010-E019)
	// ============================================

	"E010": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check vnative.json (or vnative.toml) for syntax errors.",
	},
	"E011": {
		Category: CategoryConfig,
		Message:  "Configuration validation failed",
	},

	// ============================================
	// Validation Errors (E020-E029)
	// ============================================

	"E020": {
		Category:   CategoryValidation,
		Message:    "Invalid application document",
		Suggestion: "Documents are YAML maps with type, key, props, text and children fields.",
	},
	"E021": {
		Category:   CategoryValidation,
		Message:    "Application document references an unknown element type",
		Suggestion: "Run `vnative types` to list the registered element types.",
	},

	// ============================================
	// CLI Errors (E030-E039)
	// ============================================

	"E030": {
		Category: CategoryCLI,
		Message:  "File watcher failed",
	},
	"E031": {
		Category: CategoryCLI,
		Message:  "Inspector server failed",
	},
}

// Lookup returns the template for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
