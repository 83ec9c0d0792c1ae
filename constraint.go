package fatashi

import (
	"errors"
	"regexp"
	"strings"
)

const (
	AnchorHead = "^"
	AnchorTail = "$"
)

type Field int

const (
	FieldKey        Field = 1
	FieldDefinition Field = 2
	FieldUsage      Field = 3
)

// ParseField reads a field selector parameter. Anything but 1, 2 or 3 gives
// the key field and false.
func ParseField(s string) (Field, bool) {
	switch s {
	case "1":
		return FieldKey, true
	case "2":
		return FieldDefinition, true
	case "3":
		return FieldUsage, true
	default:
		return FieldKey, false
	}
}

func (f Field) String() string {
	switch f {
	case FieldKey:
		return "key"
	case FieldDefinition:
		return "definition"
	case FieldUsage:
		return "usage"
	default:
		return "unknown"
	}
}

// FieldWrap holds the pattern fragments that pin a search pattern to one of
// the three record fields.
type FieldWrap struct {
	KeyHead string `json:"keyHead" yaml:"key_head"`
	KeyTail string `json:"keyTail" yaml:"key_tail"`
	DefHead string `json:"defHead" yaml:"def_head"`
	DefTail string `json:"defTail" yaml:"def_tail"`
	UsgHead string `json:"usgHead" yaml:"usg_head"`
	UsgTail string `json:"usgTail" yaml:"usg_tail"`
}

// WrapFor builds wrap templates for records whose fields are separated by
// delim. A field body is any run without delim, so a pattern can never leak
// into a neighbouring field.
func WrapFor(delim string) FieldWrap {
	d := regexp.QuoteMeta(delim)
	body := "[^" + d + "]*"
	if len(delim) != 1 {
		body = ".*?"
	}

	return FieldWrap{
		KeyHead: "^" + body,
		KeyTail: body + d,
		DefHead: "^" + body + d + body,
		DefTail: body + d,
		UsgHead: "^" + body + d + body + d + body,
		UsgTail: body + "$",
	}
}

func (w FieldWrap) Validate() error {
	if w.KeyHead == "" || w.KeyTail == "" || w.DefHead == "" || w.DefTail == "" || w.UsgHead == "" || w.UsgTail == "" {
		return errors.New("all six wrap templates must be set")
	}

	return nil
}

// Key pins pattern to the first field. The head is left out when the pattern
// is already anchored with "^".
func (w FieldWrap) Key(pattern string) string {
	if strings.HasPrefix(pattern, AnchorHead) {
		return pattern + w.KeyTail
	}

	return w.KeyHead + pattern + w.KeyTail
}

func (w FieldWrap) Definition(pattern string) string {
	return w.DefHead + pattern + w.DefTail
}

// Usage pins pattern to the last field. The tail is left out when the pattern
// is already anchored with "$".
func (w FieldWrap) Usage(pattern string) string {
	if strings.HasSuffix(pattern, AnchorTail) {
		return w.UsgHead + pattern
	}

	return w.UsgHead + pattern + w.UsgTail
}

func (w FieldWrap) Field(field Field, pattern string) string {
	switch field {
	case FieldDefinition:
		return w.Definition(pattern)
	case FieldUsage:
		return w.Usage(pattern)
	default:
		return w.Key(pattern)
	}
}
