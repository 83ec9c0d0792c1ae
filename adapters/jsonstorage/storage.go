package jsonstorage

import (
	"encoding/json"
	"fmt"
	"github.com/umoja4life/fatashi"
	"os"
)

// Data is a compiled set of chains: every source keeps its format and the
// records it had after normalization, so loading skips the delimiter pass.
type Data struct {
	// Prod tells whether plain searches go to the kamusi chain.
	Prod   bool                    `json:"prod"`
	Chains map[string][]SourceData `json:"chains"`
}

type SourceData struct {
	Format  fatashi.DictionaryFormat `json:"format"`
	Records []fatashi.Record         `json:"records"`
}

// FromChains snapshots the given chains, keyed by chain name.
func FromChains(chains map[string]fatashi.Chain) Data {
	data := Data{Chains: make(map[string][]SourceData, len(chains))}
	for name, chain := range chains {
		if len(chain) == 0 {
			continue
		}

		sources := make([]SourceData, 0, len(chain))
		for _, k := range chain {
			sources = append(sources, SourceData{Format: k.Format(), Records: k.Records()})
		}
		data.Chains[name] = sources
	}

	return data
}

func (d *Data) WriteToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(d)
}

// Chain rebuilds the named chain. A name missing from d gives an empty chain.
func (d *Data) Chain(name string) (fatashi.Chain, error) {
	sources := d.Chains[name]
	chain := make(fatashi.Chain, 0, len(sources))
	for i, source := range sources {
		k, err := fatashi.FromRecords(source.Format, source.Records)
		if err != nil {
			return nil, fmt.Errorf("%s source %d: %w", name, i+1, err)
		}

		chain = append(chain, k)
	}

	return chain, nil
}

func Open(path string) (*Data, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var data Data
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}

	return &data, nil
}
