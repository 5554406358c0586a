package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // path to a CUE config file
	Journal string // path to the SQLite run journal
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the widepack CLI. Run without
// a subcommand it encodes or decodes its input.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	transformOpts := &TransformOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "widepack",
		Short: "widepack - pack text pairs into wide characters",
		Long: `Pack every two characters of text into one wide code point, or unpack them.

Each output character is formed from the hex byte values of two input
characters: "bored" becomes U+626F U+7265 U+6420. Odd-length input is padded
with one space, which reappears when decoding (use --trim to drop it).

Examples:
  widepack -s bored
  widepack -d -s 桥汬漠
  widepack -f notes.txt -o notes.packed
  widepack -d -f notes.packed --trim --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(transformOpts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "CUE config file (default ./widepack.cue if present)")
	cmd.PersistentFlags().StringVar(&opts.Journal, "journal", "", "record runs in this SQLite journal")

	bindTransformFlags(cmd, transformOpts)

	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if !exitErr.reported {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitErr.Code
	}

	// Cobra usage errors: unknown flags, conflicting input sources, bad args.
	fmt.Fprintf(stderr, "Error: %v\n", err)
	fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
	return ExitCommandError
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
