package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/rowfilter/internal/expr"
	"github.com/roach88/rowfilter/internal/filter"
	"github.com/roach88/rowfilter/internal/harness"
	"github.com/roach88/rowfilter/internal/source"
	"github.com/roach88/rowfilter/internal/translate"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Lint bool // include inspection warnings
}

// ParameterOutput is a bind parameter in command output.
type ParameterOutput struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// TranslateOutput is the payload of a successful translate command.
type TranslateOutput struct {
	Predicate  string            `json:"predicate"`
	QueryText  string            `json:"query_text"`
	Parameters []ParameterOutput `json:"parameters"`
	Warnings   []string          `json:"warnings,omitempty"`
}

func (o TranslateOutput) renderText(w io.Writer) {
	fmt.Fprintf(w, "query_text: %s\n", o.QueryText)
	renderParameters(w, o.Parameters)
	if len(o.Warnings) > 0 {
		fmt.Fprintln(w, "warnings:")
		for _, warning := range o.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <predicate>",
		Short: "Translate a predicate into query text",
		Long: `Translate a single-parameter predicate into parameterized filter text
and its bind parameters.

Examples:
  rowfilter translate 'row => row.Id != 1'
  rowfilter translate 'row => row.Name.StartsWith("A_")' --lint
  rowfilter translate 'row => row.Name == null' --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Lint, "lint", false, "report constructs that may not mean what they say")

	return cmd
}

func runTranslate(opts *TranslateOptions, predicate string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	log := opts.Logger()

	stmt, err := compilePredicate(predicate)
	if err != nil {
		return reportPredicateError(formatter, err)
	}
	log.Debug("translated predicate", "query_text", stmt.QueryText(), "parameters", len(stmt.Parameters()))

	out := TranslateOutput{
		Predicate:  predicate,
		QueryText:  stmt.QueryText(),
		Parameters: parameterOutputs(stmt.Parameters()),
	}
	if opts.Lint {
		for _, w := range filter.Inspect(stmt.Filter()).Warnings {
			out.Warnings = append(out.Warnings, w.String())
		}
	}
	return formatter.Success(out)
}

// compilePredicate parses and translates predicate source text.
func compilePredicate(predicate string) (*translate.Statement, error) {
	lambda, err := source.Parse(predicate)
	if err != nil {
		return nil, err
	}
	return translate.Translate(lambda)
}

// SyntaxDetails locates a syntax error in JSON output.
type SyntaxDetails struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// reportPredicateError writes a parse or translation failure and returns the
// matching exit error.
func reportPredicateError(f *OutputFormatter, err error) error {
	var se *source.SyntaxError
	var te *translate.Error
	switch {
	case errors.As(err, &se):
		var details any
		if se.Line > 0 {
			details = SyntaxDetails{Line: se.Line, Column: se.Column}
		}
		if outErr := f.Error(harness.ErrorKindSyntax, se.Error(), details); outErr != nil {
			return outErr
		}
	case errors.As(err, &te):
		var details any
		if te.Node != "" {
			details = map[string]string{"node": te.Node}
		}
		if outErr := f.Error(string(te.Kind), te.Message, details); outErr != nil {
			return outErr
		}
	default:
		return WrapExitError(ExitCommandError, "translation failed", err)
	}
	return reportedExitError(ExitFailure, err.Error())
}

func parameterOutputs(params []translate.BindParameter) []ParameterOutput {
	out := make([]ParameterOutput, len(params))
	for i, p := range params {
		typ := "untyped"
		if p.Type != nil {
			typ = p.Type.String()
		}
		out[i] = ParameterOutput{Name: p.Name, Type: typ, Value: p.Value}
	}
	return out
}

func renderParameters(w io.Writer, params []ParameterOutput) {
	if len(params) == 0 {
		fmt.Fprintln(w, "parameters: none")
		return
	}
	fmt.Fprintln(w, "parameters:")
	for _, p := range params {
		fmt.Fprintf(w, "  %s = %s (%s)\n", p.Name, expr.FormatValue(p.Value), p.Type)
	}
}
