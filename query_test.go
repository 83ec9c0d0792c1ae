package fatashi

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParseQuery(t *testing.T) {
	table := []struct {
		Label    string
		Token    string
		Expected Query
		OK       bool
	}{
		{"Plain key", "nyumba", Query{RawKey: "nyumba"}, true},
		{"Qualifier", "abc#tech", Query{RawKey: "abc", Code: "#", Param: "tech"}, true},
		{"Field selector", "abc%2", Query{RawKey: "abc", Code: "%", Param: "2"}, true},
		{"Morphology", "vitabu&", Query{RawKey: "vitabu", Code: "&"}, true},
		{"Reserved", "abc@", Query{RawKey: "abc", Code: "@"}, true},
		{"Boundary markers", ":paka:", Query{RawKey: ":paka:"}, true},
		{"Anchors", "^paka$", Query{RawKey: "^paka$"}, true},
		{"Apostrophe and hyphen", "ng'ombe", Query{RawKey: "ng'ombe"}, true},
		{"Verb stem", "-jua&", Query{RawKey: "-jua", Code: "&"}, true},
		{"Regex plus and tilde", "a+b~", Query{RawKey: "a+b~"}, true},
		{"Underscore phrase", "mtu_mzima", Query{RawKey: "mtu_mzima"}, true},
		{"Literal", ";tea*;%2", Query{RawKey: ";tea*;", Code: "%", Param: "2"}, true},
		{"Non-ASCII letters", "ñandú", Query{RawKey: "ñandú"}, true},
		{"Garbage", "(abc)", Query{}, false},
		{"Two modifiers", "abc#n%2", Query{}, false},
		{"Empty", "", Query{}, false},
		{"Unterminated literal", ";abc", Query{}, false},
	}

	for _, tt := range table {
		t.Run(tt.Label, func(t *testing.T) {
			q, ok := ParseQuery(tt.Token)
			assert.Equal(t, tt.OK, ok)
			assert.Equal(t, tt.Expected, q)
		})
	}
}

func TestQuery_Key(t *testing.T) {
	table := []struct {
		RawKey   string
		Expected string
	}{
		{"nyumba", "nyumba"},
		{":paka:", `\bpaka\b`},
		{"mtu_mzima", "mtu mzima"},
		{"_mtu_", "mtu"},
		{";a.b;", `a\.b`},
		{";:x_y;", ":x_y"},
	}

	for _, tt := range table {
		t.Run(tt.RawKey, func(t *testing.T) {
			assert.Equal(t, tt.Expected, Query{RawKey: tt.RawKey}.Key())
		})
	}
}

func TestQuery_Modifier(t *testing.T) {
	table := []struct {
		Label    string
		Query    Query
		Expected Modifier
		Code     string
	}{
		{"None", Query{RawKey: "a"}, NoModifier{}, ""},
		{"Qualifier", Query{RawKey: "a", Code: "#", Param: "n"}, TypeQualifier{Type: "n"}, "#"},
		{"Qualifier without type", Query{RawKey: "a", Code: "#"}, NoModifier{}, ""},
		{"Field 3", Query{RawKey: "a", Code: "%", Param: "3"}, FieldSelector{Field: FieldUsage}, "%"},
		{"Field out of range", Query{RawKey: "a", Code: "%", Param: "9"}, FieldSelector{Field: FieldKey}, "%"},
		{"Morphology", Query{RawKey: "a", Code: "&"}, MorphologyAssist{}, "&"},
		{"Reserved", Query{RawKey: "a", Code: "@"}, Reserved{}, "@"},
	}

	for _, tt := range table {
		t.Run(tt.Label, func(t *testing.T) {
			m := tt.Query.Modifier()
			assert.Equal(t, tt.Expected, m)
			assert.Equal(t, tt.Code, m.Code())
		})
	}
}

func TestDictionaryFormat_Plan(t *testing.T) {
	format := DefaultFormat()
	w := format.Wrap

	t.Run("qualifier", func(t *testing.T) {
		plan := format.Plan(Query{RawKey: "abc", Code: "#", Param: "tech"})
		assert.Equal(t, w.Key("abc"), plan.Pattern)
		assert.Equal(t, w.DefHead+`\(tech\)`+w.DefTail, plan.Qualifier)
		assert.Contains(t, plan.Qualifier, `\(tech\)`)
		assert.Equal(t, "abc", plan.Highlight)
	})

	t.Run("definition_field", func(t *testing.T) {
		plan := format.Plan(Query{RawKey: "abc", Code: "%", Param: "2"})
		assert.Equal(t, FieldDefinition, plan.Field)
		assert.Equal(t, w.Definition("abc"), plan.Pattern)
		assert.Empty(t, plan.Qualifier)
	})

	t.Run("morphology", func(t *testing.T) {
		plan := format.Plan(Query{RawKey: "malimu", Code: "&"})
		assert.Equal(t, w.Key(`\b(ma)?limu`), plan.Pattern)
		assert.Equal(t, `\b(ma)?[lr]imu`, plan.Highlight)
	})

	t.Run("morphology_skips_literal", func(t *testing.T) {
		plan := format.Plan(Query{RawKey: ";malimu;", Code: "&"})
		assert.Equal(t, w.Key("malimu"), plan.Pattern)
		assert.Equal(t, "malimu", plan.Highlight)
	})
}

func TestFieldWrap(t *testing.T) {
	w := WrapFor("\t")

	assert.Equal(t, "^[^\t]*abc[^\t]*\t", w.Key("abc"))
	assert.Equal(t, "^abc[^\t]*\t", w.Key("^abc"))
	assert.Equal(t, "^[^\t]*\t[^\t]*abc[^\t]*\t", w.Definition("abc"))
	assert.Equal(t, "^[^\t]*\t[^\t]*\t[^\t]*abc[^\t]*$", w.Usage("abc"))
	assert.Equal(t, "^[^\t]*\t[^\t]*\t[^\t]*abc$", w.Usage("abc$"))

	assert.Equal(t, w.Key("x"), w.Field(FieldKey, "x"))
	assert.Equal(t, w.Definition("x"), w.Field(FieldDefinition, "x"))
	assert.Equal(t, w.Usage("x"), w.Field(FieldUsage, "x"))
	assert.Equal(t, w.Key("x"), w.Field(Field(0), "x"))

	assert.NoError(t, w.Validate())
	assert.Error(t, FieldWrap{}.Validate())
}

func TestWrapFor_MultiCharDelimiter(t *testing.T) {
	w := WrapFor("||")
	assert.Equal(t, `^.*?abc.*?\|\|`, w.Key("abc"))
}

func TestParseField(t *testing.T) {
	for _, tt := range []struct {
		Param string
		Field Field
		OK    bool
	}{
		{"1", FieldKey, true},
		{"2", FieldDefinition, true},
		{"3", FieldUsage, true},
		{"", FieldKey, false},
		{"x", FieldKey, false},
	} {
		field, ok := ParseField(tt.Param)
		assert.Equal(t, tt.Field, field, tt.Param)
		assert.Equal(t, tt.OK, ok, tt.Param)
	}

	assert.Equal(t, "definition", FieldDefinition.String())
}
