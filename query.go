package fatashi

import (
	"regexp"
	"strings"
)

const (
	// EscapeDelimiter surrounds a key that must be searched literally, e.g. ";tea;".
	EscapeDelimiter = ";"
	// BoundaryMarker stands for a word boundary at either end of a key, e.g. ":paka:".
	BoundaryMarker = ":"
)

const (
	CodeNone             = ""
	CodeTypeQualifier    = "#"
	CodeFieldSelector    = "%"
	CodeMorphologyAssist = "&"
	CodeReserved         = "@"
)

var tokenPattern = regexp.MustCompile(`^(?:(;[^;]+;)|(\^?:?[\p{L}\p{N}_'+~-]+:?\$?))([#%&@]?)(\w*)$`)

// Query is one search token split into its key and optional modifier.
type Query struct {
	RawKey string `json:"rawKey"`
	Code   string `json:"code,omitempty"`
	Param  string `json:"param,omitempty"`
}

// ParseQuery splits a raw token. The second return value is false when the
// token is not a search term at all; such tokens are skipped, not reported.
func ParseQuery(token string) (Query, bool) {
	m := tokenPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return Query{}, false
	}

	raw := m[1]
	if raw == "" {
		raw = m[2]
	}

	return Query{RawKey: raw, Code: m[3], Param: m[4]}, true
}

// Literal reports whether the key was wrapped in escape delimiters.
func (q Query) Literal() bool {
	return len(q.RawKey) >= 2 &&
		strings.HasPrefix(q.RawKey, EscapeDelimiter) &&
		strings.HasSuffix(q.RawKey, EscapeDelimiter)
}

// Key gives the normalized key: boundary markers become \b, underscores become
// spaces. A literal key is unwrapped and quoted instead.
func (q Query) Key() string {
	if q.Literal() {
		return regexp.QuoteMeta(q.RawKey[len(EscapeDelimiter) : len(q.RawKey)-len(EscapeDelimiter)])
	}

	key := strings.ReplaceAll(q.RawKey, BoundaryMarker, `\b`)
	key = strings.ReplaceAll(key, "_", " ")

	return strings.TrimSpace(key)
}

func (q Query) String() string {
	return q.RawKey + q.Code + q.Param
}

// Modifier turns the code and parameter into a typed modifier. Parameters that
// make no sense fall back to the plain key search.
func (q Query) Modifier() Modifier {
	switch q.Code {
	case CodeTypeQualifier:
		if q.Param == "" {
			return NoModifier{}
		}
		return TypeQualifier{Type: q.Param}
	case CodeFieldSelector:
		field, _ := ParseField(q.Param)
		return FieldSelector{Field: field}
	case CodeMorphologyAssist:
		return MorphologyAssist{}
	case CodeReserved:
		return Reserved{}
	default:
		return NoModifier{}
	}
}

type Modifier interface {
	Code() string
}

type NoModifier struct{}

// TypeQualifier keeps key matches whose definition mentions "(Type)".
type TypeQualifier struct {
	Type string
}

// FieldSelector searches another field instead of the key.
type FieldSelector struct {
	Field Field
}

// MorphologyAssist expands noun classes before the search and spelling
// variants for highlighting.
type MorphologyAssist struct{}

type Reserved struct{}

func (NoModifier) Code() string       { return CodeNone }
func (TypeQualifier) Code() string    { return CodeTypeQualifier }
func (FieldSelector) Code() string    { return CodeFieldSelector }
func (MorphologyAssist) Code() string { return CodeMorphologyAssist }
func (Reserved) Code() string         { return CodeReserved }

// Plan is the set of patterns one query runs with against one source.
type Plan struct {
	Query     Query  `json:"query"`
	Field     Field  `json:"field"`
	Pattern   string `json:"pattern"`
	Qualifier string `json:"qualifier,omitempty"`
	Highlight string `json:"highlight"`
}

// Plan builds the field-constrained patterns for q using the wrap templates
// of f. Modifiers the format has switched off are ignored.
func (f *DictionaryFormat) Plan(q Query) Plan {
	key := q.Key()
	plan := Plan{Query: q, Field: FieldKey, Highlight: key}

	switch m := q.Modifier().(type) {
	case TypeQualifier:
		plan.Pattern = f.Wrap.Key(key)
		if f.Modifiers.TypeQualifier {
			plan.Qualifier = f.Wrap.Definition(regexp.QuoteMeta("(" + m.Type + ")"))
		}
	case FieldSelector:
		if f.Modifiers.FieldSelector {
			plan.Field = m.Field
		}
		plan.Pattern = f.Wrap.Field(plan.Field, key)
	case MorphologyAssist:
		if f.Modifiers.MorphologyAssist && !q.Literal() {
			key = PreProcess(key)
			plan.Highlight = PostProcess(key)
		}
		plan.Pattern = f.Wrap.Key(key)
	case Reserved, NoModifier:
		plan.Pattern = f.Wrap.Key(key)
	}

	return plan
}
