package adapters

import (
	"strings"
	"time"
)

// createdAtLayouts are the created_at forms accepted when a binding set is
// read back. Writers always emit RFC3339.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

// normalizeCreatedAt rewrites value as second-precision RFC3339 in UTC.
func normalizeCreatedAt(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range createdAtLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC().Format(time.RFC3339), true
		}
	}
	return "", false
}
