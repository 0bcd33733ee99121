package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/dqaudit/internal/config"
	"github.com/JonMunkholm/dqaudit/internal/core"
	"github.com/JonMunkholm/dqaudit/internal/logging"
	"github.com/JonMunkholm/dqaudit/internal/report"
)

// options holds the parsed command-line flags.
type options struct {
	input         string
	outputCSV     string
	outputJSON    string
	outputHTML    string
	failOnWarning bool
	threshold     string
	quiet         bool
	logLevel      string
	logFormat     string
}

// app carries one invocation's state between cobra and run.
type app struct {
	cfg    *config.Config
	opts   options
	stdout io.Writer
	stderr io.Writer

	severity core.Severity
	runErr   error // Error returned by the audit itself, as opposed to flag parsing
	code     core.ExitCode
}

// run executes one invocation and returns the process exit code. It is the
// only place that recovers panics.
func run(args []string, stdout, stderr io.Writer) (code core.ExitCode) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("unhandled panic", "panic", r)
			fmt.Fprintf(stderr, "ERROR: internal error: %v\n", r)
			code = core.ExitInternalError
		}
	}()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return core.ExitInputError
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return core.ExitInputError
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, stderr)

	a := &app{cfg: cfg, stdout: stdout, stderr: stderr}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		return a.fail(err)
	}
	return a.code
}

// fail reports err and classifies it. Errors raised before the audit started
// are invocation problems and share the input-error code.
func (a *app) fail(err error) core.ExitCode {
	code := core.ExitInputError
	if a.runErr != nil {
		code = core.ExitCodeForError(a.runErr)
	}

	um := core.MapError(err)
	slog.Error("audit failed",
		"error", err,
		"code", um.Code,
		"hint", core.FormatUserError(err),
		"user_facing", core.IsUserFacing(err),
		"exit_code", int(code),
	)
	fmt.Fprintf(a.stderr, "ERROR: %v\n", err)
	return code
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dqaudit --input PATH",
		Short: "Audit user records for data-quality defects",
		Long: `dqaudit loads user records from a CSV, JSON or YAML file, validates the
email, age, country and signup_date fields, prints a severity summary and
optionally exports the reported issues as CSV, JSON or HTML.

Defaults for the threshold, fail-on-warning and logging flags are read from
DQ_SEVERITY_THRESHOLD, DQ_FAIL_ON_WARNING, LOG_LEVEL and LOG_FORMAT (a .env
file in the working directory is honoured).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.prepare()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.audit(cmd.Context()); err != nil {
				a.runErr = err
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.opts.input, "input", "", "input file (.csv, .json, .yaml or .yml)")
	f.StringVar(&a.opts.outputCSV, "output-csv", "", "write reported issues as CSV (skipped when there are none)")
	f.StringVar(&a.opts.outputJSON, "output-json", "", "write summary and reported issues as JSON")
	f.StringVar(&a.opts.outputHTML, "output-html", "", "write summary and reported issues as an HTML page")
	f.BoolVar(&a.opts.failOnWarning, "fail-on-warning", a.cfg.Audit.FailOnWarning, "exit 5 instead of 10 when blocking issues are found")
	f.StringVar(&a.opts.threshold, "severity-threshold", a.cfg.Audit.SeverityThreshold, "minimum severity to report: info, warning or error")
	f.BoolVar(&a.opts.quiet, "quiet", false, "suppress console output")
	f.StringVar(&a.opts.logLevel, "log-level", a.cfg.Logging.Level, "log level: debug, info, warn or error")
	f.StringVar(&a.opts.logFormat, "log-format", a.cfg.Logging.Format, "log format: text or json")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// prepare validates flags that cobra cannot check and applies logging flags.
func (a *app) prepare() error {
	sev, err := core.ParseSeverity(a.opts.threshold)
	if err != nil {
		return err
	}
	a.severity = sev

	switch strings.ToLower(a.opts.logFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid argument %q for --log-format: must be text or json", a.opts.logFormat)
	}
	logging.Setup(a.opts.logLevel, a.opts.logFormat, a.stderr)
	return nil
}

// audit runs the load, validate, report and export steps.
func (a *app) audit(ctx context.Context) error {
	ctx, runID := logging.WithRunID(ctx)
	logger := logging.WithFields(ctx, "input", a.opts.input)
	logger.Debug("audit started",
		"threshold", a.severity,
		"fail_on_warning", a.opts.failOnWarning,
		"config", a.cfg.String(),
	)

	records, err := core.LoadRecords(a.opts.input)
	if err != nil {
		return err
	}
	if !a.opts.quiet {
		report.PrintLoaded(a.stdout, len(records))
	}

	res := core.Audit(records, core.Options{
		Threshold:     a.severity,
		FailOnWarning: a.opts.failOnWarning,
		Today:         time.Now(),
		Logger:        logger,
	})

	if !a.opts.quiet {
		report.PrintSummary(a.stdout, res.Summary)
	}

	if err := a.export(ctx, logger, res); err != nil {
		return err
	}

	logger.Info("audit finished", "run_id", runID, "exit_code", res.ExitCode.String())
	a.code = res.ExitCode
	return nil
}

func (a *app) export(ctx context.Context, logger *slog.Logger, res core.Result) error {
	if a.opts.outputCSV != "" {
		written, err := report.WriteCSV(a.opts.outputCSV, res.Reported, a.cfg.Export.CSVBOM)
		if err != nil {
			return err
		}
		if written {
			logger.Info("csv exported", "path", a.opts.outputCSV, "issues", len(res.Reported))
		} else {
			logger.Info("csv export skipped, no reported issues", "path", a.opts.outputCSV)
		}
	}

	if a.opts.outputJSON != "" {
		if err := report.WriteJSON(a.opts.outputJSON, res.Summary, res.Reported); err != nil {
			return err
		}
		logger.Info("json exported", "path", a.opts.outputJSON)
	}

	if a.opts.outputHTML != "" {
		err := report.WriteHTML(ctx, a.opts.outputHTML, report.HTMLReport{
			Source:      a.opts.input,
			GeneratedAt: time.Now(),
			Threshold:   a.severity,
			Summary:     res.Summary,
			Issues:      res.Reported,
		})
		if err != nil {
			return err
		}
		logger.Info("html exported", "path", a.opts.outputHTML)
	}

	return nil
}
