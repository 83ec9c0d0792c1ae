package repl

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umoja4life/fatashi"
	"github.com/umoja4life/fatashi/service"
	"strings"
	"testing"
)

func testSource(t *testing.T, name, text string) *fatashi.Kamusi {
	t.Helper()

	format := fatashi.DefaultFormat()
	format.Name = name
	format.Path = name + ".txt"
	k, err := fatashi.FromText(format, text)
	require.NoError(t, err)

	return k
}

func testREPL(t *testing.T) (*REPL, *bytes.Buffer) {
	t.Helper()

	svc := &service.Service{
		Kamusi: fatashi.Chain{testSource(t, "kamusi", "nyumba -- house -- ninaenda nyumbani\n")},
		Methali: fatashi.Chain{
			testSource(t, "methali1", "haraka haraka -- haste haste -- haina baraka\n"),
			testSource(t, "methali2", "pole pole -- slowly slowly -- ndio mwendo\n"),
		},
		Test: fatashi.Chain{
			testSource(t, "test1", "paka -- cat -- paka mweusi\nkitabu -- book -- nasoma kitabu\nvitabu -- books -- vitabu vyangu\n"),
			testSource(t, "test2", "mbwa -- dog -- mbwa mkali\n"),
		},
		Options: service.Options{Name: "fatashi", ListLineCount: 20},
	}

	out := &bytes.Buffer{}
	return &REPL{Service: svc, Out: out, Theme: PlainTheme(), Version: "v0.1.0"}, out
}

func TestREPL_Execute(t *testing.T) {
	table := []struct {
		Label    string
		Line     string
		Expected string
		Loop     bool
	}{
		{"Empty line", "   ", "", true},
		{"Quit", "q", "", false},
		{"Exit", "exit", "", false},
		{
			Label:    "Implicit search",
			Line:     "paka",
			Expected: "<paka> -- cat -- <paka> mweusi\n... 1 match for paka in test1\n",
			Loop:     true,
		},
		{
			Label:    "Tafuta",
			Line:     "tafuta vitabu&",
			Expected: "<kitabu> -- book -- nasoma <kitabu>\n<vitabu> -- books -- <vitabu> vyangu\n... 2 matches for vitabu& in test1\n",
			Loop:     true,
		},
		{
			Label:    "Second level",
			Line:     "tt mbwa",
			Expected: "<mbwa> -- dog -- <mbwa> mkali\n... 1 match for mbwa in test2\n",
			Loop:     true,
		},
		{
			Label:    "Methali depth",
			Line:     "mm pole",
			Expected: "<pole> <pole> -- slowly slowly -- ndio mwendo\n... 1 match for pole in methali2\n",
			Loop:     true,
		},
		{
			Label:    "Methali list",
			Line:     "mll",
			Expected: "pole pole -- slowly slowly -- ndio mwendo\n",
			Loop:     true,
		},
		{
			Label:    "Browse",
			Line:     "browse kitabu",
			Expected: "kitabu -- book -- nasoma kitabu\nvitabu -- books -- vitabu vyangu\n",
			Loop:     true,
		},
		{"Browse without key", "b", "browse needs a key to start from\n", true},
		{"Browse miss", "b simba", "simba not found in test1\n", true},
		{"Search without tokens", "t", "nothing to search for\n", true},
		{
			Label:    "Status",
			Line:     "sts",
			Expected: "1: test1 (test1.txt) has 3 entries\n2: test2 (test2.txt) has 1 entries\n",
			Loop:     true,
		},
		{"Methali status", "ms", "1: methali1 (methali1.txt) has 1 entries\n2: methali2 (methali2.txt) has 1 entries\n", true},
		{"Help", "h", HelpText + "\n", true},
		{"Version", "v", "fatashi v0.1.0\n", true},
		{
			Label:    "Bad pattern",
			Line:     "a++",
			Expected: "token \"a++\": bad pattern",
			Loop:     true,
		},
	}

	for _, tt := range table {
		t.Run(tt.Label, func(t *testing.T) {
			r, out := testREPL(t)

			loop := r.Execute(context.Background(), tt.Line)
			assert.Equal(t, tt.Loop, loop)
			if tt.Label == "Bad pattern" {
				assert.Contains(t, out.String(), tt.Expected)
			} else {
				assert.Equal(t, tt.Expected, out.String())
			}
		})
	}
}

func TestREPL_Execute_List(t *testing.T) {
	r, out := testREPL(t)

	r.Execute(context.Background(), "list 2")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, " -- ")
	}
}

func TestREPL_Execute_EmptyChain(t *testing.T) {
	r, out := testREPL(t)
	r.Service.Methali = nil

	assert.True(t, r.Execute(context.Background(), "methali pole"))
	assert.Equal(t, "no dictionary loaded for this command\n", out.String())
}

func TestREPL_Execute_Options(t *testing.T) {
	r, out := testREPL(t)

	r.Execute(context.Background(), "options")
	assert.Equal(t, "name: fatashi\nlist line count: 20\nprod: false, verbose: false, debug: false\n", out.String())
}

func TestREPL_Run(t *testing.T) {
	r, out := testREPL(t)

	err := r.Run(context.Background(), strings.NewReader("paka\n\nquit\nmbwa\n"))
	require.NoError(t, err)

	assert.Equal(t,
		"fatashi > <paka> -- cat -- <paka> mweusi\n... 1 match for paka in test1\nfatashi > fatashi > ",
		out.String(),
	)
}

func TestREPL_Run_EndOfInput(t *testing.T) {
	r, out := testREPL(t)

	err := r.Run(context.Background(), strings.NewReader("paka"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out.String(), "fatashi > \n"))
}

func TestIsRun(t *testing.T) {
	assert.True(t, isRun("ttt", "t", "", 4))
	assert.False(t, isRun("ttttt", "t", "", 4))
	assert.False(t, isRun("tafuta", "t", "", 4))
	assert.True(t, isRun("mllll", "l", "m", 4))
	assert.False(t, isRun("m", "l", "m", 4))
	assert.False(t, isRun("ms", "m", "", 4))
}
