package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rowfilter/internal/harness"
	"github.com/roach88/rowfilter/internal/store"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Database string
	Table    string
}

// QueryOutput is the payload of a successful query command.
type QueryOutput struct {
	QueryText  string            `json:"query_text"`
	Parameters []ParameterOutput `json:"parameters"`
	Rows       []store.Row       `json:"rows"`
}

func (o QueryOutput) renderText(w io.Writer) {
	fmt.Fprintf(w, "query_text: %s\n", o.QueryText)
	renderParameters(w, o.Parameters)
	for _, row := range o.Rows {
		fmt.Fprintln(w, harness.FormatRow(row))
	}
	fmt.Fprintf(w, "(%d rows)\n", len(o.Rows))
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <predicate>",
		Short: "Run a predicate against a SQLite table",
		Long: `Translate a predicate and select the matching rows from a table in an
existing SQLite database.

--db and --table may also come from the config file or the
ROWFILTER_DB and ROWFILTER_TABLE environment variables.

Example:
  rowfilter query --db ./app.db --table people 'row => row.Name == null'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.Flags().StringVar(&opts.Table, "table", "", "table to filter")

	return cmd
}

// resolve applies config file and environment values for --db and --table.
func (o *QueryOptions) resolve() {
	if v := o.setting("db"); v != "" {
		o.Database = v
	}
	if v := o.setting("table"); v != "" {
		o.Table = v
	}
}

func runQuery(opts *QueryOptions, predicate string, cmd *cobra.Command) error {
	opts.resolve()
	formatter := opts.formatter(cmd)
	log := opts.Logger()

	if opts.Database == "" {
		return NewExitError(ExitCommandError, "--db is required")
	}
	if opts.Table == "" {
		return NewExitError(ExitCommandError, "--table is required")
	}
	if _, err := os.Stat(opts.Database); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.Database), err)
	}

	stmt, err := compilePredicate(predicate)
	if err != nil {
		return reportPredicateError(formatter, err)
	}
	log.Debug("translated predicate", "query_text", stmt.QueryText())

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	tables, err := st.Tables(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list tables", err)
	}
	if !slices.Contains(tables, opts.Table) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("table %q not found in %s (tables: %s)", opts.Table, opts.Database, strings.Join(tables, ", ")))
	}

	log.Info("executing query", "db", opts.Database, "table", opts.Table)
	rows, err := st.Select(cmd.Context(), opts.Table, stmt)
	if err != nil {
		if outErr := formatter.Error(ErrCodeQueryFailed, err.Error(), nil); outErr != nil {
			return outErr
		}
		return reportedExitError(ExitFailure, err.Error())
	}
	log.Info("query complete", "rows", len(rows))

	return formatter.Success(QueryOutput{
		QueryText:  stmt.QueryText(),
		Parameters: parameterOutputs(stmt.Parameters()),
		Rows:       rows,
	})
}
