package k8s

import "fmt"

// FormatContext renders a context as a single picker line:
//
//	<name> (cluster: <cluster>, namespace: <namespace>)
//
// Unset cluster or namespace is shown as N/A.
func FormatContext(c ContextInfo) string {
	return fmt.Sprintf("%s (cluster: %s, namespace: %s)",
		c.Name, orNotAvailable(c.Cluster), orNotAvailable(c.Namespace))
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
