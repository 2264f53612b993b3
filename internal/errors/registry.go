package errors

import (
	"sort"
	"sync"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	DocURL   string
}

var (
	registryMu sync.RWMutex

	// registry maps error codes to their templates.
	registry = map[string]ErrorTemplate{
		// ============================================
		// Element Errors (E001-E099)
		// ============================================

		"E001": {
			Category: CategoryElement,
			Message:  "Unclosed tag cannot hold content",
			DocURL:   "https://gearrs.dev/docs/errors/E001",
		},
		"E002": {
			Category: CategoryElement,
			Message:  "Child index out of bounds",
			DocURL:   "https://gearrs.dev/docs/errors/E002",
		},

		// ============================================
		// Config Errors (E120-E129)
		// ============================================

		"E120": {
			Category: CategoryConfig,
			Message:  "Invalid configuration",
			DocURL:   "https://gearrs.dev/docs/errors/E120",
		},
		"E121": {
			Category: CategoryConfig,
			Message:  "Configuration file not found",
			DocURL:   "https://gearrs.dev/docs/errors/E121",
		},

		// ============================================
		// Publish Errors (E130-E139)
		// ============================================

		"E130": {
			Category: CategoryPublish,
			Message:  "Failed to publish document",
			DocURL:   "https://gearrs.dev/docs/errors/E130",
		},

		// ============================================
		// Server Errors (E140-E149)
		// ============================================

		"E140": {
			Category: CategoryServer,
			Message:  "Preview server failed",
			DocURL:   "https://gearrs.dev/docs/errors/E140",
		},

		// ============================================
		// CLI Errors (E150-E159)
		// ============================================

		"E150": {
			Category: CategoryCLI,
			Message:  "Failed to write output",
			DocURL:   "https://gearrs.dev/docs/errors/E150",
		},
	}
)

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[code] = template
}
