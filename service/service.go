package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/umoja4life/fatashi"
	"github.com/umoja4life/fatashi/config"
	"go.uber.org/zap"
	"strings"
	"sync"
)

// ChainKind names one of the chains a Service holds.
type ChainKind string

const (
	ChainKamusi  ChainKind = "kamusi"
	ChainMethali ChainKind = "methali"
	ChainTest    ChainKind = "test"
	// ChainVocabulary is kamusi in production and test otherwise.
	ChainVocabulary ChainKind = "tafuta"
)

func ParseChainKind(s string) (ChainKind, error) {
	switch kind := ChainKind(strings.ToLower(s)); kind {
	case ChainKamusi, ChainMethali, ChainTest, ChainVocabulary:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", fatashi.ErrUnknownChain, s)
	}
}

// Options are the run settings shown by the options command.
type Options struct {
	Name          string `json:"name"`
	ListLineCount int    `json:"listLineCount"`
	Prod          bool   `json:"prod"`
	Verbose       bool   `json:"verbose"`
	Debug         bool   `json:"debug"`
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Name:          cfg.App.Name,
		ListLineCount: cfg.App.ListLineCount,
		Prod:          cfg.App.Prod,
		Verbose:       cfg.App.Verbose,
		Debug:         cfg.App.Debug,
	}
}

// Service owns the loaded chains. The engine underneath is not meant for
// concurrent use, so every call holds mu for its whole duration.
type Service struct {
	Kamusi  fatashi.Chain
	Methali fatashi.Chain
	Test    fatashi.Chain
	Options Options
	Logger  *zap.Logger

	mu sync.Mutex
}

// SearchResult holds the lookups of one search request against one source.
type SearchResult struct {
	Source  *fatashi.Kamusi
	Lookups []fatashi.Lookup
	// Errors lists tokens whose pattern did not compile. They do not stop the
	// other tokens.
	Errors []*fatashi.PatternError
}

// ListResult is a page of records from one source.
type ListResult struct {
	Source  *fatashi.Kamusi
	Records []fatashi.Record
}

func (s *Service) Chain(kind ChainKind) (fatashi.Chain, error) {
	switch kind {
	case ChainKamusi:
		return s.Kamusi, nil
	case ChainMethali:
		return s.Methali, nil
	case ChainTest:
		return s.Test, nil
	case ChainVocabulary:
		if s.Options.Prod {
			return s.Kamusi, nil
		}
		return s.Test, nil
	default:
		return nil, fmt.Errorf("%w: %q", fatashi.ErrUnknownChain, kind)
	}
}

func (s *Service) source(kind ChainKind, depth int) (*fatashi.Kamusi, error) {
	chain, err := s.Chain(kind)
	if err != nil {
		return nil, err
	}

	k := chain.Depth(depth)
	if k == nil {
		return nil, fmt.Errorf("%w: %s", fatashi.ErrEmptyChain, kind)
	}

	return k, nil
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}

	return s.Logger
}

// Search runs each token against the source depth steps into the chain.
// Tokens that are not search terms are ignored.
func (s *Service) Search(ctx context.Context, kind ChainKind, depth int, tokens []string) (*SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.source(kind, depth)
	if err != nil {
		return nil, err
	}

	res := &SearchResult{
		Source:  k,
		Lookups: make([]fatashi.Lookup, 0, len(tokens)),
		Errors:  []*fatashi.PatternError{},
	}
	for _, token := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		q, ok := fatashi.ParseQuery(token)
		if !ok {
			s.logger().Debug("token ignored", zap.String("token", token))
			continue
		}

		lookup, err := k.Run(q)
		if err != nil {
			var patternErr *fatashi.PatternError
			if errors.As(err, &patternErr) {
				s.logger().Info("bad search pattern", zap.Error(patternErr))
				res.Errors = append(res.Errors, patternErr)
				continue
			}

			return nil, err
		}

		s.logger().Debug("lookup",
			zap.String("source", k.Name()),
			zap.String("token", q.String()),
			zap.String("pattern", lookup.Plan.Pattern),
			zap.String("qualifier", lookup.Plan.Qualifier),
			zap.String("highlight", lookup.Plan.Highlight),
			zap.Int("count", lookup.Count()),
		)

		res.Lookups = append(res.Lookups, *lookup)
	}

	return res, nil
}

// List picks n random records from the source depth steps into the chain.
// A non-positive n means the configured list line count.
func (s *Service) List(ctx context.Context, kind ChainKind, depth, n int) (*ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.source(kind, depth)
	if err != nil {
		return nil, err
	}

	records := k.Sample(s.lineCount(n))
	s.logger().Debug("list", zap.String("source", k.Name()), zap.Int("count", len(records)))

	return &ListResult{Source: k, Records: records}, nil
}

// Browse gives a page of records starting at the first key matching pattern.
func (s *Service) Browse(ctx context.Context, kind ChainKind, depth int, pattern string, n int) (*ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.source(kind, depth)
	if err != nil {
		return nil, err
	}

	records, err := k.Browse(pattern, s.lineCount(n))
	if err != nil {
		return nil, &fatashi.PatternError{Token: pattern, Pattern: pattern, Err: err}
	}
	s.logger().Debug("browse",
		zap.String("source", k.Name()),
		zap.String("pattern", pattern),
		zap.Int("count", len(records)),
	)

	return &ListResult{Source: k, Records: records}, nil
}

// Status gives one line per source of the chain, head first.
func (s *Service) Status(ctx context.Context, kind ChainKind) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	chain, err := s.Chain(kind)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("%w: %s", fatashi.ErrEmptyChain, kind)
	}

	return chain.Status(), nil
}

func (s *Service) lineCount(n int) int {
	if n > 0 {
		return n
	}
	if s.Options.ListLineCount > 0 {
		return s.Options.ListLineCount
	}

	return 20
}
