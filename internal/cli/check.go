package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/rowfilter/internal/catalog"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Entry string // check a single named predicate
}

// CheckEntry is the outcome for one catalog predicate.
type CheckEntry struct {
	Name        string            `json:"name"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	QueryText   string            `json:"query_text,omitempty"`
	Parameters  []ParameterOutput `json:"parameters,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Entries []CheckEntry `json:"entries"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Total   int          `json:"total"`
}

func (r CheckResult) renderText(w io.Writer) {
	for _, e := range r.Entries {
		if e.Error != "" {
			fmt.Fprintf(w, "✗ %s\n", e.Name)
			fmt.Fprintf(w, "  %s\n", e.Error)
			continue
		}
		fmt.Fprintf(w, "✓ %s: %s\n", e.Name, e.QueryText)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Check Summary: %d passed, %d failed, %d total\n", r.Passed, r.Failed, r.Total)
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <catalog-dir>",
		Short: "Translate every predicate in a CUE catalog",
		Long: `Load a directory of CUE files declaring a "predicates" struct of
named predicate strings, and translate each one.

Exit codes:
  0 - All predicates translated
  1 - One or more predicates failed
  2 - Command error (missing directory, invalid CUE, etc.)

Examples:
  rowfilter check ./predicates
  rowfilter check ./predicates --entry active_users
  rowfilter check ./predicates --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Entry, "entry", "", "check only the named predicate")

	return cmd
}

func runCheck(opts *CheckOptions, dir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	log := opts.Logger()

	cat, err := catalog.Load(dir)
	if err != nil {
		var loadErr *catalog.LoadError
		if errors.As(err, &loadErr) {
			if outErr := formatter.Error(loadErr.Code, loadErr.Message, nil); outErr != nil {
				return outErr
			}
			return reportedExitError(ExitCommandError, loadErr.Error())
		}
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	log.Info("catalog loaded", "dir", dir, "files", cat.FileCount, "predicates", len(cat.Entries))

	if opts.Entry != "" {
		entry, ok := cat.Lookup(opts.Entry)
		if !ok {
			if outErr := formatter.Error(catalog.ErrCodeNotFound, fmt.Sprintf("no predicate named %q", opts.Entry), nil); outErr != nil {
				return outErr
			}
			return reportedExitError(ExitCommandError, fmt.Sprintf("no predicate named %q", opts.Entry))
		}
		cat.Entries = []catalog.Entry{entry}
	}

	// The combined error is reported per entry below.
	results, _ := cat.TranslateAll()

	result := CheckResult{
		Entries: make([]CheckEntry, 0, len(results)),
		Total:   len(results),
	}
	for _, r := range results {
		entry := CheckEntry{Name: r.Entry.Name, Fingerprint: r.Fingerprint}
		if r.Err != nil {
			entry.Error = r.Err.Error()
			result.Failed++
			log.Debug("predicate failed", "name", r.Entry.Name, "error", r.Err)
		} else {
			entry.QueryText = r.Statement.QueryText()
			entry.Parameters = parameterOutputs(r.Statement.Parameters())
			result.Passed++
			log.Debug("predicate translated", "name", r.Entry.Name, "query_text", entry.QueryText)
		}
		result.Entries = append(result.Entries, entry)
	}

	if result.Failed > 0 {
		message := fmt.Sprintf("%d predicate(s) failed", result.Failed)
		if err := formatter.Failure(ErrCodeCheckFailed, message, result); err != nil {
			return err
		}
		return reportedExitError(ExitFailure, message)
	}
	return formatter.Success(result)
}
