package fatashi

import "fmt"

// Chain is an ordered list of sources searched by depth: depth 1 is the head,
// deeper levels fall back to the last source.
type Chain []*Kamusi

// LoadChain loads every format in order. Any failure aborts the whole chain.
func LoadChain(formats []DictionaryFormat) (Chain, error) {
	chain := make(Chain, 0, len(formats))
	for i, format := range formats {
		k, err := Load(format)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i+1, err)
		}

		chain = append(chain, k)
	}

	return chain, nil
}

// Depth gives the source n steps from the head, counting the head as 1.
// Values below 1 give the head, values past the end give the last source. An
// empty chain gives nil.
func (c Chain) Depth(n int) *Kamusi {
	if len(c) == 0 {
		return nil
	}

	return c[min(max(n, 1), len(c))-1]
}

func (c Chain) Status() []string {
	res := make([]string, 0, len(c))
	for i, k := range c {
		res = append(res, fmt.Sprintf("%d: %s", i+1, k.Status()))
	}

	return res
}
