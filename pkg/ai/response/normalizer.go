package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

var (
	// ErrEmptyReply indicates the model returned no text at all.
	ErrEmptyReply = errors.New("empty model reply")

	// ErrMalformedReply indicates the reply text is not a JSON document.
	ErrMalformedReply = errors.New("malformed model reply")
)

var (
	jsonFenceRe  = regexp.MustCompile("(?i)```json\\s*")
	plainFenceRe = regexp.MustCompile("```\\s*")
)

// Clean removes markdown code fences (```json or ```) anywhere in the reply and trims it.
func Clean(raw string) string {
	s := jsonFenceRe.ReplaceAllString(raw, "")
	s = plainFenceRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Document is a permissively decoded model reply.
// Accessors never fail on a missing or mistyped field; they fall back to zero values.
type Document struct {
	fields map[string]any
	text   *string
}

// FromMap wraps an already decoded JSON object.
func FromMap(fields map[string]any) Document {
	if fields == nil {
		fields = map[string]any{}
	}
	return Document{fields: fields}
}

// Parse cleans raw and decodes it into a Document.
// A JSON object yields fields; a bare JSON string yields Text. Anything else is malformed.
func Parse(raw string) (Document, error) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return Document{}, ErrEmptyReply
	}

	var value any
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	switch v := value.(type) {
	case map[string]any:
		return Document{fields: v}, nil
	case string:
		return Document{fields: map[string]any{}, text: &v}, nil
	default:
		return Document{}, fmt.Errorf("%w: expected object, got %T", ErrMalformedReply, value)
	}
}

// Text returns the reply when the model answered with a bare JSON string.
func (d Document) Text() (string, bool) {
	if d.text == nil {
		return "", false
	}
	return *d.text, true
}

// String returns the first non-empty string value among candidates, tried in order.
func (d Document) String(candidates ...string) string {
	for _, key := range candidates {
		if s, ok := d.fields[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Bool returns the boolean at key, false when missing or not a boolean.
func (d Document) Bool(key string) bool {
	b, ok := d.fields[key].(bool)
	return ok && b
}

// OptionalInt returns a positive integral number at key.
// Zero, null, fractions and non-numbers all yield nil.
func (d Document) OptionalInt(key string) *int {
	var n float64
	switch v := d.fields[key].(type) {
	case float64:
		n = v
	case string:
		var parsed float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &parsed); err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	if n <= 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return nil
	}
	i := int(n)
	return &i
}

// Has reports whether key is present in the decoded object.
func (d Document) Has(key string) bool {
	_, ok := d.fields[key]
	return ok
}
