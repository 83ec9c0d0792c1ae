package fatashi

import (
	"fmt"
	"io"
	"strings"
)

// Renderer writes lookups for people to read.
type Renderer struct {
	// Emphasize wraps a highlighted span. Nil leaves spans unmarked.
	Emphasize func(string) string
	// Text styles the text between highlighted spans. Each stretch is styled
	// on its own, so a style that resets at its end cannot bleed into or cut
	// short the spans around it. Nil leaves the text as is.
	Text func(string) string
}

func (r *Renderer) text(s string) string {
	if s == "" || r.Text == nil {
		return s
	}

	return r.Text(s)
}

// FormatRecord swaps internal delimiters for the display separator of format
// and wraps every match of highlight.
func (r *Renderer) FormatRecord(format DictionaryFormat, res SearchResult) string {
	line := strings.ReplaceAll(string(res.Record), format.InternalFields, format.Display)
	if res.Highlight == nil || r.Emphasize == nil {
		return r.text(line)
	}

	sb := strings.Builder{}
	sb.Grow(len(line) + 16)
	last := 0
	for _, span := range res.Highlight.FindAllStringIndex(line, -1) {
		if span[0] == span[1] {
			continue
		}

		sb.WriteString(r.text(line[last:span[0]]))
		sb.WriteString(r.Emphasize(line[span[0]:span[1]]))
		last = span[1]
	}
	sb.WriteString(r.text(line[last:]))

	return sb.String()
}

// Render writes one line per result followed by a count line.
func (r *Renderer) Render(w io.Writer, format DictionaryFormat, lookup Lookup) error {
	for _, res := range lookup.Results {
		if _, err := fmt.Fprintln(w, r.FormatRecord(format, res)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, CountLine(lookup))
	return err
}

// RenderRecords writes plain records, as used by list and browse.
func (r *Renderer) RenderRecords(w io.Writer, format DictionaryFormat, records []Record) error {
	for _, record := range records {
		if _, err := fmt.Fprintln(w, r.FormatRecord(format, SearchResult{Record: record})); err != nil {
			return err
		}
	}

	return nil
}

func CountLine(lookup Lookup) string {
	noun := "matches"
	if lookup.Count() == 1 {
		noun = "match"
	}

	return fmt.Sprintf("... %d %s for %s in %s", lookup.Count(), noun, lookup.Plan.Query, lookup.Source)
}
