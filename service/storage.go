package service

import (
	"fmt"
	"github.com/umoja4life/fatashi"
	"github.com/umoja4life/fatashi/config"
)

// ChainOpener loads a chain from an ordered list of format file paths.
type ChainOpener func(paths []string) (fatashi.Chain, error)

// Open loads every chain named in cfg. An empty list gives an empty chain;
// any source that fails to load fails the whole call.
func Open(cfg *config.Config, open ChainOpener) (*Service, error) {
	svc := &Service{Options: OptionsFromConfig(cfg)}

	for _, c := range []struct {
		kind  ChainKind
		paths []string
		dst   *fatashi.Chain
	}{
		{ChainKamusi, cfg.Sources.Kamusi, &svc.Kamusi},
		{ChainMethali, cfg.Sources.Methali, &svc.Methali},
		{ChainTest, cfg.Sources.Test, &svc.Test},
	} {
		if len(c.paths) == 0 {
			continue
		}

		chain, err := open(c.paths)
		if err != nil {
			return nil, fmt.Errorf("%s chain: %w", c.kind, err)
		}

		*c.dst = chain
	}

	return svc, nil
}
