// Package models defines the GTD domain types: parsed documents, their
// metadata header, tasks, links, and the vault file-type vocabulary.
package models

import (
	"encoding/json"
	"time"
)

// Document is one parsed vault file. It is assembled once per parse call
// and never mutated afterwards. Content is always a suffix of RawContent
// (the metadata header and its delimiters removed), or equal to
// RawContent when no header is present.
type Document struct {
	Path       string
	Title      string
	Content    string
	RawContent string
	Role       FileType
	Meta       Metadata
	Tasks      []Task
	Links      []Link
}

// Metadata is the decoded frontmatter header. Recognized keys map onto
// the typed fields; every other key is preserved verbatim in Extra.
type Metadata struct {
	Outcome       string
	Status        string
	Area          string
	ReviewDate    *time.Time
	CreatedDate   *time.Time
	CompletedDate *time.Time
	Tags          []string
	Extra         map[string]MetaValue
}

// Task is one recognized checkbox line. Text has every inline marker
// stripped; RawText keeps the original line exactly as read. LineNumber
// is the 1-based position in the full document.
type Task struct {
	Text          string
	IsCompleted   bool
	RawText       string
	LineNumber    int
	Context       string
	Project       string
	Energy        string
	TimeEstimate  *int
	DelegatedTo   string
	DueDate       *time.Time
	ScheduledDate *time.Time
	StartDate     *time.Time
	DoneDate      *time.Time
	Priority      string
	Recurrence    string
	Tags          []string
}

// Link is one reference found in the body: a wikilink, an inline
// markdown link, or a bare @context mention.
type Link struct {
	Text       string
	Target     string
	IsExternal bool
	LineNumber int
}

// MetaKind discriminates the closed set of frontmatter value shapes.
type MetaKind int

const (
	MetaNull MetaKind = iota
	MetaString
	MetaInt
	MetaFloat
	MetaBool
	MetaList
	MetaMap
)

// MetaValue holds one decoded frontmatter value of arbitrary shape as a
// closed sum over {string, int, float, bool, null, list, map}, so unknown
// header fields round-trip without reflection.
type MetaValue struct {
	Kind  MetaKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	List  []MetaValue
	Map   map[string]MetaValue
}

// MetaFromAny converts a decoded YAML value into a MetaValue. Timestamps
// collapse to their RFC 3339 string form; anything outside the closed set
// falls back to null.
func MetaFromAny(v any) MetaValue {
	switch t := v.(type) {
	case nil:
		return MetaValue{Kind: MetaNull}
	case string:
		return MetaValue{Kind: MetaString, Str: t}
	case bool:
		return MetaValue{Kind: MetaBool, Bool: t}
	case int:
		return MetaValue{Kind: MetaInt, Int: int64(t)}
	case int64:
		return MetaValue{Kind: MetaInt, Int: t}
	case uint64:
		return MetaValue{Kind: MetaInt, Int: int64(t)}
	case float32:
		return MetaValue{Kind: MetaFloat, Float: float64(t)}
	case float64:
		return MetaValue{Kind: MetaFloat, Float: t}
	case time.Time:
		return MetaValue{Kind: MetaString, Str: t.Format(time.RFC3339)}
	case []any:
		list := make([]MetaValue, len(t))
		for i, item := range t {
			list[i] = MetaFromAny(item)
		}
		return MetaValue{Kind: MetaList, List: list}
	case map[string]any:
		m := make(map[string]MetaValue, len(t))
		for k, item := range t {
			m[k] = MetaFromAny(item)
		}
		return MetaValue{Kind: MetaMap, Map: m}
	default:
		return MetaValue{Kind: MetaNull}
	}
}

// ToAny returns the natural Go value for serialization.
func (v MetaValue) ToAny() any {
	switch v.Kind {
	case MetaString:
		return v.Str
	case MetaInt:
		return v.Int
	case MetaFloat:
		return v.Float
	case MetaBool:
		return v.Bool
	case MetaList:
		out := make([]any, len(v.List))
		for i, item := range v.List {
			out[i] = item.ToAny()
		}
		return out
	case MetaMap:
		out := make(map[string]any, len(v.Map))
		for k, item := range v.Map {
			out[k] = item.ToAny()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON emits the underlying value, so Extra maps serialize the
// same way the raw header would.
func (v MetaValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToAny())
}
