package repl

import "github.com/umoja4life/fatashi"

// Theme decorates the text the loop writes. A nil func leaves text as is.
type Theme struct {
	Prompt func(string) string
	Info   func(string) string
	Warn   func(string) string
	Error  func(string) string
	Result fatashi.Renderer
}

// PlainTheme marks highlights with angle brackets and adds no colour.
func PlainTheme() Theme {
	return Theme{
		Result: fatashi.Renderer{
			Emphasize: func(s string) string { return "<" + s + ">" },
		},
	}
}

func apply(style func(string) string, s string) string {
	if style == nil {
		return s
	}

	return style(s)
}
