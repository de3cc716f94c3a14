package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Manifest Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid element manifest",
		DocURL:   "https://vango.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		DocURL:   "https://vango.dev/docs/errors/E121",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E141": {
		Category: CategoryCLI,
		Message:  "Element manifest not found",
		DocURL:   "https://vango.dev/docs/errors/E141",
	},
	"E143": {
		Category: CategoryCLI,
		Message:  "Element not found",
		DocURL:   "https://vango.dev/docs/errors/E143",
	},
	"E144": {
		Category: CategoryCLI,
		Message:  "Invalid command argument",
		DocURL:   "https://vango.dev/docs/errors/E144",
	},

	// ============================================
	// Definition Errors (E200-E209)
	// ============================================

	"E200": {
		Category: CategoryConfig,
		Message:  "Unknown prop type",
		DocURL:   "https://vango.dev/docs/errors/E200",
	},
	"E201": {
		Category: CategoryConfig,
		Message:  "Invalid shadow mode",
		DocURL:   "https://vango.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Invalid custom element name",
		DocURL:   "https://vango.dev/docs/errors/E202",
	},
	"E203": {
		Category: CategoryConfig,
		Message:  "Element already defined",
		DocURL:   "https://vango.dev/docs/errors/E203",
	},
	"E204": {
		Category: CategoryConfig,
		Message:  "Invalid prop name",
		DocURL:   "https://vango.dev/docs/errors/E204",
	},
	"E205": {
		Category: CategoryConfig,
		Message:  "Prop attribute collision",
		DocURL:   "https://vango.dev/docs/errors/E205",
	},
	"E206": {
		Category: CategoryConfig,
		Message:  "Missing renderer",
		DocURL:   "https://vango.dev/docs/errors/E206",
	},
	"E207": {
		Category: CategoryConfig,
		Message:  "Definition not registered",
		DocURL:   "https://vango.dev/docs/errors/E207",
	},

	// ============================================
	// Synchronization Errors (E210-E219)
	// ============================================

	"E210": {
		Category: CategoryRuntime,
		Message:  "Attribute value has wrong shape",
		DocURL:   "https://vango.dev/docs/errors/E210",
	},
	"E211": {
		Category: CategoryRuntime,
		Message:  "Property value has wrong type",
		DocURL:   "https://vango.dev/docs/errors/E211",
	},

	// ============================================
	// Render Errors (E220-E229)
	// ============================================

	"E220": {
		Category: CategoryRender,
		Message:  "Renderer mount failed",
		DocURL:   "https://vango.dev/docs/errors/E220",
	},
	"E221": {
		Category: CategoryRender,
		Message:  "Renderer update failed",
		DocURL:   "https://vango.dev/docs/errors/E221",
	},
	"E222": {
		Category: CategoryRender,
		Message:  "Renderer unmount failed",
		DocURL:   "https://vango.dev/docs/errors/E222",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
