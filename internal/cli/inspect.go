package cli

import (
	"fmt"
	"text/tabwriter"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/roach88/widepack/internal/pair"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	InputOptions
}

// InspectRow is one packed pair as shown by inspect.
type InspectRow struct {
	Index  int    `json:"index"`
	Hi     string `json:"hi"`
	Lo     string `json:"lo"`
	Tokens string `json:"tokens"`
	Packed string `json:"packed"`
	Char   string `json:"char"`
	Padded bool   `json:"padded,omitempty"`
}

// InspectResult is the full encode breakdown.
type InspectResult struct {
	InputLength int          `json:"input_length"`
	Padded      bool         `json:"padded"`
	Pairs       []InspectRow `json:"pairs"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show how input is paired and packed",
		Long: `Show the encode breakdown of the input: each pair of characters, their
hex tokens, and the wide character they pack into.

Examples:
  widepack inspect -s bored
  widepack inspect -f notes.txt --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, cmd)
		},
	}

	bindInputFlags(cmd, &opts.InputOptions)

	return cmd
}

func runInspect(opts *InspectOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions, formatter)
	if err != nil {
		return err
	}
	applyInputFlags(cmd, &cfg, &opts.InputOptions, opts.RootOptions)

	text, _, err := readInput(cmd, &opts.InputOptions, cfg, formatter)
	if err != nil {
		return err
	}

	result := buildInspectResult(text)
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return outputInspectText(formatter, result)
}

func buildInspectResult(text string) InspectResult {
	pairs := pair.Breakdown(text)
	result := InspectResult{
		InputLength: utf8.RuneCountInString(text),
		Pairs:       make([]InspectRow, len(pairs)),
	}

	for i, p := range pairs {
		result.Pairs[i] = InspectRow{
			Index:  i + 1,
			Hi:     displayRune(p.Hi),
			Lo:     displayRune(p.Lo),
			Tokens: pair.Token(p.Hi) + " " + pair.Token(p.Lo),
			Packed: "0x" + pair.Hex4(p.Packed),
			Char:   displayRune(p.Packed),
			Padded: p.Padded,
		}
		if p.Padded {
			result.Pairs[i].Lo = "(pad)"
			result.Padded = true
		}
	}

	return result
}

func outputInspectText(formatter *OutputFormatter, result InspectResult) error {
	w := formatter.Writer

	padNote := ""
	if result.Padded {
		padNote = ", padded with one space"
	}
	fmt.Fprintf(w, "%d character(s) -> %d pair(s)%s\n\n", result.InputLength, len(result.Pairs), padNote)

	if len(result.Pairs) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tHI\tLO\tTOKENS\tPACKED\tCHAR")
	for _, row := range result.Pairs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			row.Index, row.Hi, row.Lo, row.Tokens, row.Packed, row.Char)
	}
	return tw.Flush()
}

// displayRune shows printable characters as themselves and everything else
// as U+XXXX.
func displayRune(r rune) string {
	if utf8.ValidRune(r) && unicode.IsPrint(r) && r != ' ' {
		return string(r)
	}
	return fmt.Sprintf("U+%04X", r)
}
