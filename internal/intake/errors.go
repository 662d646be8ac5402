package intake

import (
	"sort"
	"strings"
)

// FieldErrors maps a field name to a human-readable validation message.
// An empty map means the form passed validation.
type FieldErrors map[string]string

// Fields returns the offending field names in sorted order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Error joins all field messages, so FieldErrors can travel as an error
// through code that does not care about individual fields.
func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}
