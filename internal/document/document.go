// Package document defines the domain types for Jera: front-matter
// metadata, the closed set of body blocks, and the parsed document
// they combine into.
package document

import (
	"fmt"
	"strconv"
	"time"
)

// Document kinds. Every document is one or the other; the kind decides
// which section of the built site it lands in.
const (
	KindNote       = "note"
	KindExperiment = "experiment"
)

// Metadata is the mapping parsed from a document's front matter.
// Values keep the types the YAML loader produced (strings, numbers,
// bools, dates, lists); the accessors below normalize them.
type Metadata map[string]any

// Has reports whether key is present, regardless of its value.
func (m Metadata) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// String returns the value under key rendered as a string. Absent keys
// and explicit nulls yield "". Date values come back in YYYY-MM-DD
// form so they sort and display consistently.
func (m Metadata) String(key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	return stringify(v)
}

// StringList normalizes list-valued metadata such as tags: a bare
// string becomes a one-element list, list elements are stringified,
// and any other shape (including an absent key) yields an empty list.
func (m Metadata) StringList(key string) []string {
	switch v := m[key].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, stringify(item))
		}
		return out
	default:
		return []string{}
	}
}

// Kind returns the kind declared under the "type" key when it is
// exactly "note" or "experiment"; otherwise fallback. Unknown values
// never override the location-derived kind.
func (m Metadata) Kind(fallback string) string {
	if t := m.String("type"); t == KindNote || t == KindExperiment {
		return t
	}
	return fallback
}

// Slug returns the slug declared in metadata, or stem when the field
// is absent or empty.
func (m Metadata) Slug(stem string) string {
	if s := m.String("slug"); s != "" {
		return s
	}
	return stem
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// RawDocument is the split form of a source file: validated metadata
// plus the body text below the front matter, not yet scanned for
// blocks.
type RawDocument struct {
	Metadata Metadata
	Body     string
}

// Document is a fully parsed source file.
type Document struct {
	Metadata   Metadata
	Blocks     []Block
	SourcePath string
}
