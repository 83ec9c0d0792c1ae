package formatfile

import (
	"fmt"
	"github.com/umoja4life/fatashi"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strings"
)

// Open reads the format file at path. Keys left out of the file keep the
// values of fatashi.DefaultFormat, and a relative dictionary path is taken
// from the directory the format file is in.
//
// A path that does not end in .yaml or .yml is treated as a dictionary file in
// the default format.
func Open(path string) (*fatashi.DictionaryFormat, error) {
	if !isFormatFile(path) {
		format := fatashi.DefaultFormat()
		format.Path = path
		format.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		return &format, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	format := fatashi.DefaultFormat()
	data := formatFileData{}
	err = yaml.NewDecoder(f).Decode(&data)
	if err != nil {
		return nil, fmt.Errorf("could not decode format file %s: %w", path, err)
	}
	data.apply(&format)

	if format.Path == "" {
		return nil, fmt.Errorf("%w: %s has no dictionary path", fatashi.ErrInvalidFormat, path)
	}
	if !filepath.IsAbs(format.Path) {
		format.Path = filepath.Join(filepath.Dir(path), format.Path)
	}
	if format.Name == "" {
		format.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &format, nil
}

// OpenChain opens every format file in order and loads the dictionaries they
// point to.
func OpenChain(paths []string) (fatashi.Chain, error) {
	formats := make([]fatashi.DictionaryFormat, 0, len(paths))
	for i, path := range paths {
		format, err := Open(path)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i+1, err)
		}

		formats = append(formats, *format)
	}

	return fatashi.LoadChain(formats)
}

func isFormatFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// formatFileData mirrors fatashi.DictionaryFormat with pointers, so that a key
// missing from the file can be told apart from one set to its zero value.
type formatFileData struct {
	Name            *string            `yaml:"name"`
	Path            *string            `yaml:"path"`
	FieldDelimiters *string            `yaml:"field_delimiters"`
	InternalFields  *string            `yaml:"internal_fields"`
	RecordDelimiter *string            `yaml:"record_delimiter"`
	Display         *string            `yaml:"display"`
	CaseSensitive   *bool              `yaml:"case_sensitive"`
	Wrap            *fatashi.FieldWrap `yaml:"wrap"`
	Modifiers       *modifiersData     `yaml:"modifiers"`
}

type modifiersData struct {
	TypeQualifier    *bool `yaml:"type_qualifier"`
	FieldSelector    *bool `yaml:"field_selector"`
	MorphologyAssist *bool `yaml:"morphology_assist"`
}

func (d *formatFileData) apply(format *fatashi.DictionaryFormat) {
	set(&format.Name, d.Name)
	set(&format.Path, d.Path)
	set(&format.FieldDelimiters, d.FieldDelimiters)
	set(&format.RecordDelimiter, d.RecordDelimiter)
	set(&format.Display, d.Display)
	set(&format.CaseSensitive, d.CaseSensitive)

	if d.InternalFields != nil {
		format.InternalFields = *d.InternalFields
		format.Wrap = fatashi.WrapFor(format.InternalFields)
	}
	if d.Wrap != nil {
		format.Wrap = *d.Wrap
	}

	if d.Modifiers != nil {
		set(&format.Modifiers.TypeQualifier, d.Modifiers.TypeQualifier)
		set(&format.Modifiers.FieldSelector, d.Modifiers.FieldSelector)
		set(&format.Modifiers.MorphologyAssist, d.Modifiers.MorphologyAssist)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
