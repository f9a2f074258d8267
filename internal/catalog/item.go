// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Item is one raw provider record with typed, defaulted field access. A
// path names nested object keys, e.g. Bool("accessInfo", "epub", "isAvailable").
type Item interface {
	// String returns the value at path as text. Numbers and booleans are
	// formatted; missing, null, empty or non-scalar values yield def.
	String(def string, path ...string) string

	// Strings returns the list at path. A scalar string becomes a
	// one-element list; anything else yields nil.
	Strings(path ...string) []string

	// Int returns the value at path as an integer. JSON numbers and numeric
	// strings ("400", "400.0") are accepted; anything else yields def.
	Int(def int, path ...string) int

	// Float returns the value at path as a float with the same coercion
	// rules as Int.
	Float(def float64, path ...string) float64

	// Bool returns true for a JSON true or a string such as "true" or "1";
	// anything else is false.
	Bool(path ...string) bool
}

// RawItem is the Item implementation over a decoded JSON object.
type RawItem map[string]any

// Items returns the objects listed under key in a decoded response body.
// Non-object entries are skipped; a missing key yields an empty list.
func Items(body map[string]any, key string) []Item {
	list, _ := body[key].([]any)
	items := make([]Item, 0, len(list))
	for _, v := range list {
		if m, ok := v.(map[string]any); ok {
			items = append(items, RawItem(m))
		}
	}
	return items
}

func (r RawItem) lookup(path []string) (any, bool) {
	var cur any = map[string]any(r)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func (r RawItem) String(def string, path ...string) string {
	v, ok := r.lookup(path)
	if !ok {
		return def
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(t)
	default:
		return def
	}
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func (r RawItem) Strings(path ...string) []string {
	v, ok := r.lookup(path)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (r RawItem) Int(def int, path ...string) int {
	f, ok := r.number(path)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return def
	}
	return int(f)
}

func (r RawItem) Float(def float64, path ...string) float64 {
	f, ok := r.number(path)
	if !ok {
		return def
	}
	return f
}

func (r RawItem) Bool(path ...string) bool {
	v, ok := r.lookup(path)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	}
	return false
}

func (r RawItem) number(path []string) (float64, bool) {
	v, ok := r.lookup(path)
	if !ok {
		return 0, false
	}
	var f float64
	var err error
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case float64:
		f = t
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
