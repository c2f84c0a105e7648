package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/pizza/internal/api"
	"github.com/idilsaglam/pizza/internal/config"
	"github.com/idilsaglam/pizza/internal/logging"
	"github.com/idilsaglam/pizza/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	ConfigPath string
	APIURL     string
	Theme      string
	Verbose    bool
}

// usageError marks bad invocations; Run maps it to exit code 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// app carries what subcommands share once setup has run.
type app struct {
	opt    Options
	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
		return 2
	}
	return 1
}

// setup loads config, applies flag overrides and builds the logger and
// API client. interactive routes logs away from the terminal.
func (a *app) setup(interactive bool) error {
	cfg, err := config.Load(a.opt.ConfigPath)
	if err != nil {
		return err
	}
	a.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	ui.SetTheme(cfg.UI.Theme)

	logger, err := logging.New(cfg.Logging, logging.Options{Interactive: interactive, Verbose: a.opt.Verbose})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.client = api.NewClient(cfg.API, cfg.GetTimeout(), logger)
	logger.Debug("config loaded",
		zap.String("path", a.opt.ConfigPath),
		zap.String("base_url", cfg.API.BaseURL),
		zap.Duration("timeout", cfg.GetTimeout()))
	return nil
}

func (a *app) applyFlags(cfg *config.Config) {
	if a.opt.APIURL != "" {
		cfg.API.BaseURL = a.opt.APIURL
	}
	if a.opt.Theme != "" {
		cfg.UI.Theme = a.opt.Theme
	}
}

func (a *app) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// usageArgs turns an argument validation failure into a usage error.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}
