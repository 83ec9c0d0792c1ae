package fatashi

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"
	"os"
	"regexp"
	"slices"
	"strings"
)

// Record is one normalized dictionary line: key, definition and usage joined
// by the internal field delimiter. Malformed lines are kept as they are.
type Record string

// Fields splits r on delim into at most three fields.
func (r Record) Fields(delim string) []string {
	return strings.SplitN(string(r), delim, 3)
}

// Entry is a record split into its named fields.
type Entry struct {
	Key        string `json:"key"`
	Definition string `json:"definition"`
	Usage      string `json:"usage"`
}

func (r Record) Entry(delim string) Entry {
	fields := r.Fields(delim)
	e := Entry{Key: fields[0]}
	if len(fields) > 1 {
		e.Definition = fields[1]
	}
	if len(fields) > 2 {
		e.Usage = fields[2]
	}

	return e
}

// Kamusi is one loaded dictionary source. The record list is read-only after
// load, so a Kamusi may be shared freely by readers.
type Kamusi struct {
	format  DictionaryFormat
	records []Record
}

// Load reads the file named by format.Path, replaces every field delimiter
// match with the internal delimiter, and splits the text into records.
func Load(format DictionaryFormat) (*Kamusi, error) {
	if format.Path == "" {
		return nil, &LoadError{Op: "open", Err: fmt.Errorf("%w: path is empty", ErrInvalidFormat)}
	}

	data, err := os.ReadFile(format.Path)
	if err != nil {
		return nil, &LoadError{Path: format.Path, Op: "read", Err: err}
	}

	return FromText(format, string(data))
}

// FromText builds a Kamusi from text already in memory.
func FromText(format DictionaryFormat, text string) (*Kamusi, error) {
	if err := format.Validate(); err != nil {
		return nil, &LoadError{Path: format.Path, Op: "validate", Err: err}
	}

	normalized, err := Normalize(format, text)
	if err != nil {
		return nil, err
	}

	return &Kamusi{format: format, records: split(format, normalized)}, nil
}

// FromRecords builds a Kamusi from records that are already normalized, such
// as those saved from another Kamusi.
func FromRecords(format DictionaryFormat, records []Record) (*Kamusi, error) {
	if err := format.Validate(); err != nil {
		return nil, &LoadError{Path: format.Path, Op: "validate", Err: err}
	}

	return &Kamusi{format: format, records: slices.Clone(records)}, nil
}

// Normalize replaces every source field delimiter in text with the internal
// one. Running it on its own output changes nothing for the default format.
func Normalize(format DictionaryFormat, text string) (string, error) {
	if format.FieldDelimiters == "" {
		return text, nil
	}

	delimiters, err := format.compileDelimiters()
	if err != nil {
		return "", &LoadError{Path: format.Path, Op: "compile field delimiters", Err: err}
	}

	return delimiters.ReplaceAllLiteralString(text, format.InternalFields), nil
}

func split(format DictionaryFormat, text string) []Record {
	text = strings.TrimSuffix(text, format.RecordDelimiter)
	if text == "" {
		return []Record{}
	}

	lines := strings.Split(text, format.RecordDelimiter)
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		if format.RecordDelimiter == "\n" {
			line = strings.TrimSuffix(line, "\r")
		}

		records = append(records, Record(line))
	}

	return records
}

func (k *Kamusi) Format() DictionaryFormat {
	return k.format
}

func (k *Kamusi) Name() string {
	return k.format.DisplayName()
}

func (k *Kamusi) Len() int {
	return len(k.records)
}

// Records gives a copy of every record in file order.
func (k *Kamusi) Records() []Record {
	return slices.Clone(k.records)
}

func (k *Kamusi) Status() string {
	return fmt.Sprintf("%s (%s) has %d entries", k.Name(), k.format.Path, len(k.records))
}

// Compile turns a search pattern into a regexp, case-insensitive unless the
// format says otherwise.
func (k *Kamusi) Compile(pattern string) (*regexp.Regexp, error) {
	if !k.format.CaseSensitive {
		pattern = "(?i)" + pattern
	}

	return regexp.Compile(pattern)
}

// Search yields, in file order, every record that contains a match of pattern.
func (k *Kamusi) Search(pattern string) (iter.Seq[Record], error) {
	re, err := k.Compile(pattern)
	if err != nil {
		return nil, err
	}

	return k.Filter(re), nil
}

func (k *Kamusi) Filter(re *regexp.Regexp) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, record := range k.records {
			if re.MatchString(string(record)) && !yield(record) {
				return
			}
		}
	}
}

// Sample picks up to n distinct records at random.
func (k *Kamusi) Sample(n int) []Record {
	if n <= 0 {
		return []Record{}
	}
	if n > len(k.records) {
		n = len(k.records)
	}

	res := make([]Record, 0, n)
	for _, i := range rand.Perm(len(k.records))[:n] {
		res = append(res, k.records[i])
	}

	return res
}

// Browse gives a page of n records in file order, starting at the first
// record whose key matches pattern.
func (k *Kamusi) Browse(pattern string, n int) ([]Record, error) {
	re, err := k.Compile(k.format.Wrap.Key(pattern))
	if err != nil {
		return nil, err
	}

	for i, record := range k.records {
		if re.MatchString(string(record)) {
			end := min(i+max(n, 1), len(k.records))
			return append([]Record(nil), k.records[i:end]...), nil
		}
	}

	return []Record{}, nil
}

// SearchResult is a matched record and the pattern that marks its highlight.
type SearchResult struct {
	Record    Record
	Highlight *regexp.Regexp
}

// Lookup is the outcome of one query against one source.
type Lookup struct {
	Plan    Plan
	Source  string
	Results []SearchResult
}

func (l *Lookup) Count() int {
	return len(l.Results)
}

// Run executes q against k.
func (k *Kamusi) Run(q Query) (*Lookup, error) {
	plan := k.format.Plan(q)

	re, err := k.Compile(plan.Pattern)
	if err != nil {
		return nil, &PatternError{Token: q.String(), Pattern: plan.Pattern, Err: err}
	}

	var qualifier *regexp.Regexp
	if plan.Qualifier != "" {
		qualifier, err = k.Compile(plan.Qualifier)
		if err != nil {
			return nil, &PatternError{Token: q.String(), Pattern: plan.Qualifier, Err: err}
		}
	}

	// Highlighting is always case-insensitive.
	highlight, err := regexp.Compile("(?i)" + plan.Highlight)
	if err != nil {
		return nil, &PatternError{Token: q.String(), Pattern: plan.Highlight, Err: err}
	}

	lookup := &Lookup{Plan: plan, Source: k.Name(), Results: []SearchResult{}}
	for record := range k.Filter(re) {
		if qualifier != nil && !qualifier.MatchString(string(record)) {
			continue
		}

		lookup.Results = append(lookup.Results, SearchResult{Record: record, Highlight: highlight})
	}

	return lookup, nil
}

// Tafuta runs every token against k. Tokens that are not search terms are
// skipped. Tokens whose pattern does not compile are left out of the result
// and reported together in the returned error.
func (k *Kamusi) Tafuta(tokens ...string) ([]Lookup, error) {
	res := make([]Lookup, 0, len(tokens))
	var errs []error
	for _, token := range tokens {
		q, ok := ParseQuery(token)
		if !ok {
			continue
		}

		lookup, err := k.Run(q)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		res = append(res, *lookup)
	}

	return res, errors.Join(errs...)
}
