package evaluation

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseReason distinguishes "not JSON" from "JSON of the wrong shape"; the
// two are reported under different codes.
type ParseReason int

const (
	ParseMalformed ParseReason = iota
	ParseNotAnObject
)

type ParseError struct {
	Reason ParseReason
	Detail string
}

func (e *ParseError) Error() string {
	switch e.Reason {
	case ParseNotAnObject:
		return fmt.Sprintf("provider output is valid JSON but not an object: %s", e.Detail)
	default:
		return fmt.Sprintf("provider output is not valid JSON: %s", e.Detail)
	}
}

// Parse attempts strict JSON decoding of a raw provider response. Markdown
// code fences are stripped first since providers routinely wrap JSON in them.
// No normalization happens here.
func Parse(raw string) (gjson.Result, error) {
	clean := stripCodeFences(raw)
	if clean == "" {
		return gjson.Result{}, &ParseError{Reason: ParseMalformed, Detail: "empty response"}
	}
	if !gjson.Valid(clean) {
		return gjson.Result{}, &ParseError{Reason: ParseMalformed, Detail: snippet(clean)}
	}
	v := gjson.Parse(clean)
	if !v.IsObject() {
		return gjson.Result{}, &ParseError{Reason: ParseNotAnObject, Detail: "top-level " + jsonKindName(v)}
	}
	return v, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
	}
	return s
}

func jsonKindName(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "object"
	case v.IsArray():
		return "array"
	case v.Type == gjson.String:
		return "string"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.True, v.Type == gjson.False:
		return "boolean"
	case v.Type == gjson.Null:
		return "null"
	default:
		return "unknown"
	}
}

func snippet(s string) string {
	const max = 80
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
