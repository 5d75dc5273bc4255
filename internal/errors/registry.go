package errors

import (
	"sort"
	"sync"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://vrender.dev/docs/errors/"

var (
	registryMu sync.RWMutex

	// registry maps error codes to their templates.
	registry = map[string]ErrorTemplate{
		// ============================================
		// Render Errors (R001-R099)
		// ============================================

		"R001": {
			Category: CategoryRender,
			Message:  "Unsupported tag",
			Detail:   "An element's tag must be a markup tag name or a function component.",
			DocURL:   docBase + "R001",
		},
		"R002": {
			Category: CategoryRender,
			Message:  "Invalid child",
			Detail:   "Children must be strings, elements or nested lists of them. Strict mode rejects anything else instead of dropping it.",
			DocURL:   docBase + "R002",
		},
		"R003": {
			Category: CategoryRender,
			Message:  "Conflicting children",
			Detail:   "A markup element has both a children prop and declared children. The prop would silently replace the declared children.",
			DocURL:   docBase + "R003",
		},
		"R004": {
			Category: CategoryRender,
			Message:  "Render cancelled",
			Detail:   "The render context was cancelled or its deadline passed before the tree finished rendering.",
			DocURL:   docBase + "R004",
		},
		"R005": {
			Category: CategoryRender,
			Message:  "Invalid component props",
			Detail:   "A built-in component was called without a prop it needs.",
			DocURL:   docBase + "R005",
		},

		// ============================================
		// Document Errors (D101-D119)
		// ============================================

		"D101": {
			Category: CategoryDocument,
			Message:  "Invalid tree document",
			Detail:   "The tree document is not valid YAML or JSON.",
			DocURL:   docBase + "D101",
		},
		"D102": {
			Category: CategoryDocument,
			Message:  "Invalid node",
			Detail:   "A node mapping must have a string tag and may only contain tag, props and children.",
			DocURL:   docBase + "D102",
		},
		"D103": {
			Category: CategoryDocument,
			Message:  "Invalid props",
			Detail:   "Node props must be a mapping of attribute names to values.",
			DocURL:   docBase + "D103",
		},
		"D104": {
			Category: CategoryDocument,
			Message:  "Tree document not found",
			Detail:   "The tree document file could not be read.",
			DocURL:   docBase + "D104",
		},

		// ============================================
		// Configuration Errors (C120-C149)
		// ============================================

		"C120": {
			Category: CategoryConfig,
			Message:  "Invalid vrender.json",
			Detail:   "The vrender.json configuration file is malformed.",
			DocURL:   docBase + "C120",
		},
		"C121": {
			Category: CategoryConfig,
			Message:  "Invalid configuration value",
			Detail:   "A configuration value is out of range or cannot be parsed.",
			DocURL:   docBase + "C121",
		},
		"C141": {
			Category: CategoryConfig,
			Message:  "Configuration not found",
			Detail:   "No vrender.json was found.",
			DocURL:   docBase + "C141",
		},

		// ============================================
		// Export Errors (X201-X219)
		// ============================================

		"X201": {
			Category: CategoryExport,
			Message:  "Export failed",
			Detail:   "A page could not be rendered or stored.",
			DocURL:   docBase + "X201",
		},
		"X202": {
			Category: CategoryExport,
			Message:  "Missing bucket",
			Detail:   "S3 export needs a bucket name.",
			DocURL:   docBase + "X202",
		},

		// ============================================
		// CLI Errors (L301-L319)
		// ============================================

		"L301": {
			Category: CategoryCLI,
			Message:  "Missing argument",
			Detail:   "The command needs more arguments.",
			DocURL:   docBase + "L301",
		},
	}
)

func lookup(code string) (ErrorTemplate, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[code]
	return t, ok
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	registryMu.RLock()
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	registryMu.RUnlock()
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	return lookup(code)
}

// Register adds or replaces an error template.
func Register(code string, template ErrorTemplate) {
	registryMu.Lock()
	registry[code] = template
	registryMu.Unlock()
}
