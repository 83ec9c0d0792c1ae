package fatashi

import (
	"errors"
	"fmt"
)

var ErrEmptyChain = errors.New("dictionary chain has no sources")
var ErrUnknownChain = errors.New("unknown dictionary chain")
var ErrInvalidFormat = errors.New("invalid dictionary format")

// LoadError is returned when a dictionary source cannot be read or its
// delimiter pattern does not compile. It is not retried.
type LoadError struct {
	Path string
	Op   string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s: %s", e.Path, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// PatternError is returned when a search token expands to a pattern the regexp
// engine refuses, e.g. "++".
type PatternError struct {
	Token   string `json:"token"`
	Pattern string `json:"pattern"`
	Err     error  `json:"-"`
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("token %q: bad pattern %q: %s", e.Token, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
