package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override flags,
// e.g. ROWFILTER_FORMAT=json.
const EnvPrefix = "ROWFILTER"

// IDGenerator produces the trace ID attached to JSON responses.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-ordered UUIDv7 trace IDs.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // optional YAML config file

	// IDGenerator allows overriding the trace ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator IDGenerator

	config *viper.Viper
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the rowfilter CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rowfilter",
		Short: "rowfilter - predicates to parameterized SQL filters",
		Long: `Translate predicate expressions into parameterized SQL filter text.

Flags may also be set through a YAML config file (--config) or
ROWFILTER_* environment variables. Precedence: flag, environment,
config file, default.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.loadConfig(cmd.Flags()); err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to YAML config file")

	// Add subcommands
	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// loadConfig layers the config file and environment under the parsed flags
// and writes the resolved global values back into opts.
func (o *RootOptions) loadConfig(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if o.Config != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(o.Config)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", o.Config, err)
		}
	}

	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	o.config = v
	o.Format = v.GetString("format")
	o.Verbose = v.GetBool("verbose")
	return nil
}

// setting resolves a command flag through the config layers. It falls back
// to the zero value when called outside a command run.
func (o *RootOptions) setting(key string) string {
	if o.config == nil {
		return ""
	}
	return o.config.GetString(key)
}

// Logger returns the logger configured for the current run.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

// traceID returns a fresh trace ID from the configured generator.
func (o *RootOptions) traceID() string {
	gen := o.IDGenerator
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	return gen.Generate()
}

// formatter builds the output formatter for one command invocation.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: o.Verbose,
		TraceID: o.traceID(),
	}
}

// newLogger configures a text handler on w; Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
