// Package cmd provides the CLI commands for mortgage-calc.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/mortgage-calc/internal/config"
	"github.com/iwvelando/mortgage-calc/internal/report"
	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/output"
	"github.com/iwvelando/mortgage-calc/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

// rootOptions holds the persistent flags and the state prepared from them
// before a subcommand runs.
type rootOptions struct {
	configPath   string
	logLevel     string
	outputFormat string

	conf   *config.Configuration
	logger *zap.Logger
}

// Execute runs the CLI
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "mortgage-calc",
		Short: "Mortgage payment, amortization and affordability calculator",
		Long: `mortgage-calc computes fixed-rate mortgage payments and amortization
schedules, estimates how much a household can borrow, and itemizes the taxes
and fees of a home purchase.

Examples:
  mortgage-calc payment --principal 200000 --rate 3.25 --years 30
  mortgage-calc schedule --config config.yaml
  mortgage-calc afford --curve --output-format json
  mortgage-calc costs --region Madrid
  mortgage-calc serve --server-config server-config.yaml`,
		SilenceUsage:      true,
		PersistentPreRunE: opts.prepare,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, json")

	rootCmd.AddCommand(
		newPaymentCommand(opts),
		newScheduleCommand(opts),
		newAffordCommand(opts),
		newCostsCommand(opts),
		newReportCommand(opts),
		newServeCommand(opts),
		newVersionCommand(),
	)

	return rootCmd
}

// prepare loads the configuration, initializes logging and resolves the
// output format. A missing default config file is treated as empty so that
// flag-only invocations work; an explicitly named file must exist.
func (o *rootOptions) prepare(cmd *cobra.Command, args []string) error {
	conf, err := o.loadConfiguration(cmd)
	if err != nil {
		return err
	}
	o.conf = conf

	logger, err := initializeLogger(conf.Logging, o.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.logger = logger

	// CLI override takes precedence over config
	if o.outputFormat == "" {
		o.outputFormat = conf.Output.Format
	}
	if o.outputFormat == "" {
		o.outputFormat = constants.OutputFormatPretty
	}
	return validation.ValidateOutputFormat(o.outputFormat)
}

func (o *rootOptions) loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	if _, err := os.Stat(o.configPath); errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		return &config.Configuration{}, nil
	}

	conf, err := config.LoadConfiguration(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", o.configPath, err)
	}
	return conf, nil
}

// logWarnings reports suspicious configuration values without failing.
func (o *rootOptions) logWarnings(op string) {
	for _, warning := range o.conf.ValidateConfiguration() {
		o.logger.Warn("Configuration warning: "+warning,
			zap.String("op", op),
		)
	}
}

func (o *rootOptions) write(cmd *cobra.Command, result *report.Report, withSchedule bool) error {
	return output.Write(cmd.OutOrStdout(), o.outputFormat, output.NewReportView(result, withSchedule))
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Overrides the root hook: no configuration is needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mortgage-calc version %s\n", Version)
		},
	}
}
