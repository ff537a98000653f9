// Package record provides the raw row representation shared by every
// source reader, plus the coercion rules that turn inconsistently typed
// fields into canonical values. Accessors never fail: a field that is
// missing or unparsable yields the documented default so callers stay
// free of error handling for per-field noise.
package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one raw row from a tabular or line-delimited source, keyed
// by whatever column names that source happened to use.
type Record map[string]any

// listCutset covers the bracket/quote decoration seen around
// list-valued fields exported as strings.
const listCutset = "[]'\" "

// lookup returns the value of the first key present in the record.
func (r Record) lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// Str returns the first non-empty trimmed string among the given keys,
// or "".
func (r Record) Str(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			if s := strings.TrimSpace(stringify(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

// Int coerces the first present key to a non-negative-friendly integer.
// Missing key, empty value, or parse failure all yield 0. Later keys
// are consulted only when earlier keys are absent entirely, matching
// the legacy fallback-chain behavior of the source exports.
func (r Record) Int(keys ...string) int {
	v, ok := r.lookup(keys...)
	if !ok {
		return 0
	}
	return toInt(v)
}

// Bool reports whether the first present key holds an affirmative
// marker (yes/true/1/y, case-insensitive).
func (r Record) Bool(keys ...string) bool {
	v, ok := r.lookup(keys...)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(stringify(v))) {
	case "yes", "true", "1", "y":
		return true
	}
	return false
}

// List normalizes a list-valued field. The value may arrive as a native
// list or as a bracket/quote-delimited comma string; both forms become
// an ordered slice of trimmed, non-empty strings. The result is never
// nil.
func (r Record) List(keys ...string) []string {
	out := []string{}
	v, ok := r.lookup(keys...)
	if !ok || v == nil {
		return out
	}
	if items, isList := v.([]any); isList {
		for _, item := range items {
			if s := strings.TrimSpace(stringify(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	raw := strings.Trim(strings.TrimSpace(stringify(v)), listCutset)
	for _, part := range strings.Split(raw, ",") {
		part = strings.Trim(strings.TrimSpace(part), "'\"")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Weight parses an edge strength: integer if it parses, otherwise a
// float rounded to the nearest integer, otherwise 1. Empty and missing
// values are 1, not 0 — an edge always carries some weight.
func (r Record) Weight(keys ...string) int {
	v, ok := r.lookup(keys...)
	if !ok {
		return 1
	}
	s := strings.TrimSpace(stringify(v))
	if s == "" {
		return 1
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(math.Round(f))
	}
	return 1
}

// stringify renders any raw cell value as a string without formatting
// surprises for the common JSON scalar types.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// toInt coerces a single raw value to int, defaulting to 0.
func toInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
