// Package confirmation shapes the arbitrary JSON payload returned by the
// booking webhook into labeled entries a page or terminal can render.
package confirmation

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	json "github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"
)

// Record is the untyped confirmation body. Any JSON object is accepted;
// nothing about its shape is enforced.
type Record map[string]any

// Entry is one confirmation detail ready for display. Value is sanitized
// text, safe to render as HTML.
type Entry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// DefaultMessage is shown when the webhook response carries no message.
const DefaultMessage = "Your appointment request has been received."

// Recognized keys render first, in this order, under fixed labels. The
// message key is surfaced through Message rather than as an entry.
var recognizedOrder = []string{
	"confirmationId",
	"appointmentDate",
	"appointmentTime",
	"doctorName",
}

var recognizedLabels = map[string]string{
	"confirmationId":  "Confirmation ID",
	"appointmentDate": "Appointment Date",
	"appointmentTime": "Appointment Time",
	"doctorName":      "Doctor Name",
}

// The webhook is external; everything it returns is untrusted.
var sanitizer = bluemonday.StrictPolicy()

// Message returns the record's message value, or DefaultMessage when the
// record has none worth showing.
func Message(rec Record) string {
	v, ok := rec["message"]
	if !ok {
		return DefaultMessage
	}
	if s := sanitize(v); s != "" {
		return s
	}
	return DefaultMessage
}

// Display flattens a record into ordered entries: recognized keys first in
// canonical order, then every remaining key sorted, with camelCase names
// converted to space-separated labels.
func Display(rec Record) []Entry {
	entries := make([]Entry, 0, len(rec))

	for _, key := range recognizedOrder {
		if v, ok := rec[key]; ok {
			entries = append(entries, Entry{Key: key, Label: recognizedLabels[key], Value: sanitize(v)})
		}
	}

	rest := make([]string, 0, len(rec))
	for key := range rec {
		if key == "message" {
			continue
		}
		if _, known := recognizedLabels[key]; known {
			continue
		}
		rest = append(rest, key)
	}
	sort.Strings(rest)

	for _, key := range rest {
		entries = append(entries, Entry{Key: key, Label: humanizeKey(key), Value: sanitize(rec[key])})
	}

	return entries
}

func sanitize(v any) string {
	return strings.TrimSpace(sanitizer.Sanitize(stringify(v)))
}

// stringify renders a decoded JSON value as display text. Nested objects and
// arrays come out as compact JSON rather than Go's fmt notation.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// humanizeKey converts a camelCase key into a space-separated label:
// followUpRequired -> "Follow Up Required", referralID -> "Referral ID".
// Underscores and hyphens also act as separators.
func humanizeKey(key string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(key)

	var words []string
	for _, chunk := range strings.Fields(cleaned) {
		words = append(words, splitCamel(chunk)...)
	}

	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

func splitCamel(s string) []string {
	runes := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		lowerToUpper := (unicode.IsLower(prev) || unicode.IsDigit(prev)) && unicode.IsUpper(cur)
		// End of an initialism: "IDNumber" splits before "Number".
		initialismEnd := unicode.IsUpper(prev) && unicode.IsUpper(cur) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if lowerToUpper || initialismEnd {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	return words
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
