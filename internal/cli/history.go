package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/widepack/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in the journal",
		Long: `List runs recorded in the SQLite journal, most recent first.

The journal stores the mode, the input source, a digest of the input and the
character counts. It never stores the text itself.

Examples:
  widepack history --journal runs.db
  widepack history --journal runs.db --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of runs to list (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions, formatter)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("journal") {
		cfg.Journal = opts.Journal
	}

	if cfg.Journal == "" {
		return formatter.Fail(ExitCommandError, ErrCodeJournal,
			"no journal configured: pass --journal or set journal in the config file", nil)
	}
	if _, err := os.Stat(cfg.Journal); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal,
			fmt.Sprintf("journal not found: %s", cfg.Journal), err)
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), err)
	}
	defer j.Close()

	entries, err := j.List(cmd.Context(), opts.Limit)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeJournal, err.Error(), err)
	}
	formatter.VerboseLog("Read %d run(s) from %s", len(entries), cfg.Journal)

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	w := formatter.Writer
	if len(entries) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tMODE\tSOURCE\tIN\tOUT\tDIGEST")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			e.Seq, e.ID, e.Mode, e.Source, e.InputLength, e.OutputLength, e.InputDigest[:12])
	}
	return tw.Flush()
}
