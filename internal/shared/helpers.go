// Package shared provides common utility functions used across multiple
// packages in the hwbind codebase.
package shared

import (
	"fmt"
	"strings"
)

// SplitList splits a comma separated value, trims every item and drops
// empty ones. It returns nil when nothing is left.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// PortError wraps a serial port failure with the port name.
func PortError(port string, err error) error {
	return fmt.Errorf("port=%s: %w", port, err)
}
