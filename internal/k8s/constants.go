package k8s

import "time"

// Kubernetes client constants
const (
	// APITimeout bounds every request made to the API server (the version
	// probe and the namespace listing). The picker is interactive, so a hung
	// API server should fail fast instead of leaving the terminal blocked.
	APITimeout = 15 * time.Second

	// NotAvailable is displayed for context fields that are not set
	NotAvailable = "N/A"

	// DefaultNamespace is what kubectl falls back to when the current
	// context has no namespace set
	DefaultNamespace = "default"
)
