/*
Package frontmatter splits a leading metadata block from a Markdown document.

The block must start on the first line of the document and may be YAML, TOML, or JSON:

	---
	title: "Alpha"
	date: 2022-03-01
	---

	+++
	title = "Alpha"
	+++

	;;;
	{"title": "Alpha"}
	;;;

Documents without a block have an empty Matter. Parse reports a malformed block as an
error, while Lenient swallows it and returns an empty Matter.
*/
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/araddon/dateparse"
)

// Matter holds the decoded key/value pairs of a front matter block.
type Matter map[string]any

// Parse extracts and decodes the front matter of b, returning the
// decoded values and the remaining body.
func Parse(b []byte) (Matter, []byte, error) {
	var m map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(b), &m)
	if err != nil {
		return Matter{}, b, fmt.Errorf("frontmatter.Parse: %w", err)
	}
	if m == nil {
		m = make(map[string]any)
	}
	for k, v := range m {
		m[k] = normalize(v)
	}
	return Matter(m), body, nil
}

// normalize turns the map[any]any values decoded from YAML into
// map[string]any so a Matter can always be encoded as JSON.
func normalize(v any) any {
	switch v := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case map[string]any:
		for k, e := range v {
			v[k] = normalize(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
		return v
	default:
		return v
	}
}

// Lenient is like Parse but never fails. Malformed front matter yields an empty Matter.
func Lenient(b []byte) Matter {
	m, _, err := Parse(b)
	if err != nil {
		return Matter{}
	}
	return m
}

// Has reports whether key is present with a non-null value.
func (m Matter) Has(key string) bool {
	v, ok := m[key]
	return ok && v != nil
}

// String returns the value of key if it is a string.
func (m Matter) String(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// Text returns the value of key formatted as text. Strings are returned verbatim.
func (m Matter) Text(key string) (string, bool) {
	if !m.Has(key) {
		return "", false
	}
	switch v := m[key].(type) {
	case string:
		return v, true
	case time.Time:
		return v.Format(time.RFC3339), true
	default:
		return fmt.Sprint(v), true
	}
}

// Time interprets the value of key as a date. Decoders that understand dates
// (TOML) produce time.Time values; strings are parsed leniently in loc.
func (m Matter) Time(key string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	switch v := m[key].(type) {
	case time.Time:
		return v, true
	case string:
		t, err := dateparse.ParseIn(strings.TrimSpace(v), loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}
