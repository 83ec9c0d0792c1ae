package fatashi

import (
	"fmt"
	"regexp"
)

const (
	// DefaultFieldDelimiters matches " -- " or a tab followed by "__" and blanks.
	// Neither side may cross a line break.
	DefaultFieldDelimiters   = `([ \t]+--[ \t]+)|(\t__[ \t\x0B\f]+)`
	DefaultInternalDelimiter = "\t"
	DefaultRecordDelimiter   = "\n"
	DefaultDisplayDelimiter  = " -- "
)

// DictionaryFormat describes one dictionary source file and how its records
// are laid out. Values are built once at startup and never changed.
type DictionaryFormat struct {
	Name            string `json:"name" yaml:"name"`
	Path            string `json:"path" yaml:"path"`
	FieldDelimiters string `json:"fieldDelimiters" yaml:"field_delimiters"`
	InternalFields  string `json:"internalFields" yaml:"internal_fields"`
	RecordDelimiter string `json:"recordDelimiter" yaml:"record_delimiter"`
	Display         string `json:"display" yaml:"display"`
	CaseSensitive   bool   `json:"caseSensitive,omitempty" yaml:"case_sensitive,omitempty"`

	Wrap      FieldWrap `json:"wrap" yaml:"wrap"`
	Modifiers Modifiers `json:"modifiers" yaml:"modifiers"`
}

// Modifiers toggles which token modifiers a source honours. A disabled
// modifier degrades to a plain key search.
type Modifiers struct {
	TypeQualifier    bool `json:"typeQualifier" yaml:"type_qualifier"`
	FieldSelector    bool `json:"fieldSelector" yaml:"field_selector"`
	MorphologyAssist bool `json:"morphologyAssist" yaml:"morphology_assist"`
}

// DefaultFormat gives the format used by the Swahili dictionaries: " -- "
// separated fields, newline separated records, tab as internal delimiter.
func DefaultFormat() DictionaryFormat {
	return DictionaryFormat{
		FieldDelimiters: DefaultFieldDelimiters,
		InternalFields:  DefaultInternalDelimiter,
		RecordDelimiter: DefaultRecordDelimiter,
		Display:         DefaultDisplayDelimiter,
		Wrap:            WrapFor(DefaultInternalDelimiter),
		Modifiers: Modifiers{
			TypeQualifier:    true,
			FieldSelector:    true,
			MorphologyAssist: true,
		},
	}
}

// Validate checks the invariants a source needs before it can be loaded.
func (f *DictionaryFormat) Validate() error {
	if f.InternalFields == "" {
		return fmt.Errorf("%w: internal field delimiter is empty", ErrInvalidFormat)
	}
	if f.RecordDelimiter == "" {
		return fmt.Errorf("%w: record delimiter is empty", ErrInvalidFormat)
	}
	if err := f.Wrap.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}

	return nil
}

// DisplayName is the name shown in status lines, falling back to the path.
func (f *DictionaryFormat) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}

	return f.Path
}

func (f *DictionaryFormat) compileDelimiters() (*regexp.Regexp, error) {
	return regexp.Compile(f.FieldDelimiters)
}
