package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/roach88/widepack/internal/config"
	"github.com/roach88/widepack/internal/journal"
	"github.com/roach88/widepack/internal/pair"
	"github.com/roach88/widepack/internal/textio"
)

// TransformOptions holds flags for the root encode/decode run.
type TransformOptions struct {
	*RootOptions
	InputOptions
	Output string // output file path
	Decode bool   // decode instead of encode
	Trim   bool   // drop the padding space after decoding
	Strict bool   // reject lossy encodes
}

// TransformResult describes one run.
type TransformResult struct {
	Mode         string `json:"mode"`
	Source       string `json:"source"`
	InputLength  int    `json:"input_length"`
	OutputLength int    `json:"output_length"`
	Padded       bool   `json:"padded"`
	Lossless     bool   `json:"lossless"`
	Output       string `json:"output"`
	OutputFile   string `json:"output_file,omitempty"`
	JournalID    string `json:"journal_id,omitempty"`
}

func bindTransformFlags(cmd *cobra.Command, opts *TransformOptions) {
	bindInputFlags(cmd, &opts.InputOptions)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().BoolVarP(&opts.Decode, "decode", "d", false, "decode instead of encode")
	cmd.Flags().BoolVar(&opts.Trim, "trim", false, "drop the trailing padding space when decoding")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail instead of encoding input that cannot round-trip")
}

// applyTransformFlags overrides config values with mode flags set on the
// command line.
func applyTransformFlags(cmd *cobra.Command, cfg *config.Config, opts *TransformOptions) {
	applyInputFlags(cmd, cfg, &opts.InputOptions, opts.RootOptions)

	flags := cmd.Flags()
	if flags.Changed("decode") {
		cfg.Mode = config.ModeEncode
		if opts.Decode {
			cfg.Mode = config.ModeDecode
		}
	}
	if flags.Changed("trim") {
		cfg.Trim = opts.Trim
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.Strict
	}
}

func runTransform(opts *TransformOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions, formatter)
	if err != nil {
		return err
	}
	applyTransformFlags(cmd, &cfg, opts)

	text, source, err := readInput(cmd, &opts.InputOptions, cfg, formatter)
	if err != nil {
		return err
	}

	result := TransformResult{
		Mode:        cfg.Mode,
		Source:      source,
		InputLength: utf8.RuneCountInString(text),
	}
	formatter.VerboseFields("read input",
		"source", source, "charset", cfg.Charset, "characters", result.InputLength)

	if cfg.Decoding() {
		result.Output = pair.Decode(text)
		if cfg.Trim {
			result.Output = pair.TrimPadding(result.Output)
		}
		result.Lossless = true
	} else {
		lossless, representable := pair.Lossless(text), pair.Representable(text)
		if cfg.Strict && !lossless {
			return formatter.Fail(ExitFailure, ErrCodeLossy,
				"input cannot round-trip: it has characters above U+00FF or a pair starting with NUL", nil)
		}
		if cfg.Strict && !representable {
			return formatter.Fail(ExitFailure, ErrCodeLossy,
				"input packs into surrogate code points, which UTF-8 output cannot hold", nil)
		}
		if !lossless {
			formatter.VerboseLog("Input has characters that will not round-trip")
		}
		if !representable {
			formatter.VerboseLog("Surrogate code points in the output are replaced with U+FFFD")
		}

		result.Output = pair.Encode(text)
		result.Padded = result.InputLength%2 == 1
		result.Lossless = lossless && representable
	}
	result.OutputLength = utf8.RuneCountInString(result.Output)

	formatter.VerboseFields("transformed",
		"mode", result.Mode, "output_characters", result.OutputLength, "padded", result.Padded)

	if opts.Output != "" {
		if err := textio.WriteFile(opts.Output, result.Output); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, err.Error(), err)
		}
		result.OutputFile = opts.Output
		formatter.VerboseLog("Wrote %d character(s) to %s", result.OutputLength, opts.Output)
	}

	if cfg.Journal != "" {
		id, err := recordRun(cmd, cfg.Journal, text, result)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), err)
		}
		result.JournalID = id
		formatter.VerboseLog("Recorded run %s in %s", id, cfg.Journal)
	}

	return outputTransform(formatter, result)
}

// recordRun appends the run to the journal at path and returns its ID.
func recordRun(cmd *cobra.Command, path, input string, result TransformResult) (string, error) {
	j, err := journal.Open(path)
	if err != nil {
		return "", err
	}
	defer j.Close()

	entry, err := j.Record(cmd.Context(), journal.Entry{
		Mode:         result.Mode,
		Source:       result.Source,
		InputDigest:  journal.Digest(input),
		InputLength:  result.InputLength,
		OutputLength: result.OutputLength,
		Padded:       result.Padded,
		Lossless:     result.Lossless,
	})
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return entry.ID, nil
}

func outputTransform(formatter *OutputFormatter, result TransformResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	// Written to a file: nothing on stdout.
	if result.OutputFile != "" {
		return nil
	}
	fmt.Fprintln(formatter.Writer, result.Output)
	return nil
}
