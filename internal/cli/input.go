package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/widepack/internal/config"
	"github.com/roach88/widepack/internal/textio"
)

// InputOptions selects the text handed to the codec.
type InputOptions struct {
	String    string // literal input (-s)
	File      string // input file path (-f)
	Charset   string // input file charset
	Normalize bool   // NFC-normalize before transforming
}

// sourceString names literal input in results and the journal.
const sourceString = "string"

// bindInputFlags registers the mutually exclusive -s/-f sources and the
// options that shape how input is read.
func bindInputFlags(cmd *cobra.Command, in *InputOptions) {
	cmd.Flags().StringVarP(&in.String, "string", "s", "", "input text")
	cmd.Flags().StringVarP(&in.File, "file", "f", "", "read input from a file")
	cmd.Flags().StringVar(&in.Charset, "charset", textio.DefaultCharset,
		fmt.Sprintf("input file charset %v", textio.Charsets()))
	cmd.Flags().BoolVar(&in.Normalize, "normalize", false, "NFC-normalize input before transforming")
	cmd.MarkFlagsMutuallyExclusive("string", "file")
}

// newFormatter builds the formatter for a command run.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting output
		Verbose:   opts.Verbose,
	}
}

// loadConfig reads the config file named by --config, or ./widepack.cue when
// it exists, and falls back to defaults otherwise.
func loadConfig(opts *RootOptions, formatter *OutputFormatter) (config.Config, error) {
	path := opts.Config
	if path == "" {
		path = config.Find(".")
	}
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, formatter.Fail(ExitCommandError, ErrCodeConfigInvalid, err.Error(), nil)
	}
	formatter.VerboseLog("Loaded config %s", path)
	return cfg, nil
}

// applyInputFlags overrides config values with input flags set on the
// command line.
func applyInputFlags(cmd *cobra.Command, cfg *config.Config, in *InputOptions, root *RootOptions) {
	flags := cmd.Flags()
	if flags.Changed("charset") {
		cfg.Charset = in.Charset
	}
	if flags.Changed("normalize") {
		cfg.Normalize = in.Normalize
	}
	if flags.Changed("journal") {
		cfg.Journal = root.Journal
	}
}

// readInput returns the input text and a name for its source. Charset and
// normalization come from cfg.
func readInput(cmd *cobra.Command, in *InputOptions, cfg config.Config, formatter *OutputFormatter) (string, string, error) {
	if !textio.IsCharset(cfg.Charset) {
		return "", "", formatter.Fail(ExitCommandError, ErrCodeCharset,
			fmt.Sprintf("unknown charset %q: must be one of %v", cfg.Charset, textio.Charsets()), nil)
	}

	var text, source string
	switch {
	case cmd.Flags().Changed("string"):
		text, source = in.String, sourceString
	case in.File != "":
		data, err := textio.ReadFile(in.File, cfg.Charset)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", "", formatter.Fail(ExitCommandError, ErrCodeReadFailed,
					fmt.Sprintf("input file not found: %s", in.File), err)
			}
			return "", "", formatter.Fail(ExitCommandError, ErrCodeReadFailed, err.Error(), err)
		}
		text, source = data, in.File
	default:
		return "", "", formatter.Fail(ExitCommandError, ErrCodeNoInput,
			"no input was detected: specify a source using the -s or -f options", nil)
	}

	if cfg.Normalize {
		text = textio.Normalize(text)
	}
	return text, source, nil
}
