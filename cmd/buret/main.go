package main

import (
	"fmt"
	"io"
	"os"

	"buret/internal"
	"buret/internal/config"
	"buret/internal/container"
	"buret/internal/errors"
	"buret/internal/report"

	"github.com/spf13/cobra"
)

const usageLine = "Uso: buret data.csv"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return errors.ExitCode(err)
	}
	return errors.ExitOK
}

type rootOptions struct {
	envFile  string
	format   string
	sheet    string
	logLevel string
	noTTest  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "buret [data.csv|data.xlsx]",
		Short: "Descriptive and inferential report for BURET burnout survey data",
		Long: `Reads a survey file with the integer columns edad, sexo, uso_redes, burnout
and factores_psicosociales, classifies burnout (MBI) and factores_psicosociales
(COPSOQ-ISTAS21) into risk bands and prints:

  1. descriptive statistics for the numeric columns
  2. frequencies for sexo, nivel_burnout and nivel_copsoq
  3. the Pearson correlation matrix
  4. a high vs low uso_redes comparison (median split) on burnout,
     with Cohen's d and Welch's t-test

Configuration is read from the environment (and a .env file when present):
  LOG_LEVEL, BURET_FORMAT, BURET_SHEET, BURET_WELCH_ENABLED, BURET_MAX_WARNING_SAMPLES

Example: buret respuestas.csv --format markdown`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.Usage(fmt.Sprintf("expected a single data file, got %d arguments", len(args)))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No input file is a usage request, not a failure
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), usageLine)
				return nil
			}
			return runAnalysis(cmd, opts, args[0])
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Usage(err.Error())
	})

	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file layered under the environment")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: "+report.FormatList()+" (overrides BURET_FORMAT)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "worksheet to read from .xlsx input (overrides BURET_SHEET)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "ERROR|WARN|INFO|DEBUG|TRACE (overrides LOG_LEVEL)")
	cmd.Flags().BoolVar(&opts.noTTest, "no-ttest", false, "disable Welch's t-test; the report says it is unavailable")

	return cmd
}

func runAnalysis(cmd *cobra.Command, opts *rootOptions, path string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	renderer, err := report.NewRenderer(cfg.Report.Format)
	if err != nil {
		return errors.Wrap(errors.ConfigInvalid(err.Error()), "report format")
	}

	logger := internal.NewLoggerTo(cmd.ErrOrStderr(), cfg.Log.Level)
	c, err := container.New(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "failed to create application container")
	}

	return c.AnalysisService.Run(cmd.Context(), path, renderer, cmd.OutOrStdout())
}

// loadConfig reads environment configuration, then applies command-line overrides
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case cmd.Flags().Changed("env-file"):
		cfg, err = config.LoadFile(opts.envFile)
	case fileExists(opts.envFile):
		cfg, err = config.LoadFile(opts.envFile)
	default:
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		format, err := report.ParseFormat(opts.format)
		if err != nil {
			return nil, errors.Usage(err.Error())
		}
		cfg.Report.Format = format
	}
	if flags.Changed("sheet") {
		cfg.Input.Sheet = opts.sheet
	}
	if flags.Changed("log-level") {
		level, ok := internal.ParseLogLevel(opts.logLevel)
		if !ok {
			return nil, errors.Usage(fmt.Sprintf("unknown log level %q", opts.logLevel))
		}
		cfg.Log.Level = level
	}
	if opts.noTTest {
		cfg.Stats.WelchEnabled = false
	}
	return cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
