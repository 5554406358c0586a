package harness

import (
	"fmt"
	"slices"

	"github.com/roach88/widepack/internal/pair"
)

// Result is the outcome of running a scenario.
type Result struct {
	Name     string
	Trace    []CaseTrace
	Failures []string
}

// Passed reports whether every case matched its expectation.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// CaseTrace records one case. Code points are rendered as U+XXXX so traces
// stay readable and stable whatever the terminal does with packed text.
type CaseTrace struct {
	Index  int      `json:"index"`
	Op     string   `json:"op"`
	Input  []string `json:"input"`
	Output []string `json:"output"`
	Pass   bool     `json:"pass"`
}

// Run executes every case in s.
func Run(s *Scenario) (*Result, error) {
	result := &Result{
		Name:  s.Name,
		Trace: make([]CaseTrace, 0, len(s.Cases)),
	}

	for i, c := range s.Cases {
		in := c.inputRunes()
		out, want, err := execute(c, in)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}

		pass := slices.Equal(out, want)
		if !pass {
			result.Failures = append(result.Failures, fmt.Sprintf(
				"case %d (%s): got %v, want %v", i, c.Op, codepoints(out), codepoints(want)))
		}

		result.Trace = append(result.Trace, CaseTrace{
			Index:  i,
			Op:     c.Op,
			Input:  codepoints(in),
			Output: codepoints(out),
			Pass:   pass,
		})
	}

	return result, nil
}

func execute(c Case, in []rune) (out, want []rune, err error) {
	switch c.Op {
	case OpEncode:
		return pair.EncodeRunes(in), c.wantRunes(), nil
	case OpDecode:
		return pair.DecodeRunes(in), c.wantRunes(), nil
	case OpRoundTrip:
		out = pair.DecodeRunes(pair.EncodeRunes(in))
		if c.Trim && len(in)%2 == 1 {
			out = out[:len(out)-1]
		}
		want = c.wantRunes()
		if want == nil {
			want = in
		}
		return out, want, nil
	}
	return nil, nil, fmt.Errorf("unknown op %q", c.Op)
}

func codepoints(rs []rune) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = fmt.Sprintf("U+%04X", r)
	}
	return out
}
