package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RowanDark/cipherkit/internal/config"
	"github.com/RowanDark/cipherkit/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func run(args []string, stdout, stderr io.Writer) int {
	return runWithInput(args, os.Stdin, stdout, stderr)
}

func runWithInput(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	return 0
}

// app carries the state shared by every subcommand once the configuration
// has been resolved.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	colorMode  string

	cfg     config.Config
	log     *zap.Logger
	audit   *logging.AuditLogger
	painter painter

	undoGlobals func()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "cipherctl",
		Short:         "Classical cipher toolkit",
		Long:          "cipherctl encrypts, decrypts and breaks Caesar and Vigenère ciphers.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noSubcommand,
		RunE:          requireSubcommand,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "read configuration from this file instead of the default locations")
	flags.StringVar(&a.logLevel, "log-level", "", "override the configured log level")
	flags.StringVar(&a.colorMode, "color", "", "colorize output (auto|always|never)")

	root.AddCommand(
		newCaesarCmd(a),
		newVigenereCmd(a),
		newDetectCmd(a),
		newPipelineCmd(a),
		newRecipeCmd(a),
		newOpsCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// noSubcommand rejects stray positional arguments on group commands so that
// a mistyped subcommand is a usage error.
func noSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func requireSubcommand(cmd *cobra.Command, _ []string) error {
	return usagef("%s requires a subcommand", cmd.CommandPath())
}

func (a *app) setup() error {
	var (
		cfg config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFrom(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.colorMode != "" {
		cfg.Output.Color = config.NormalizeColor(a.colorMode)
	}
	if err := cfg.Validate(); err != nil {
		return usageError{msg: err.Error()}
	}
	a.cfg = cfg

	logger, err := logging.NewLogger(cfg.LogLevel, a.stderr)
	if err != nil {
		return usageError{msg: err.Error()}
	}
	a.log = logger
	a.undoGlobals = zap.ReplaceGlobals(logger)

	if cfg.AuditLog != "" {
		audit, err := logging.NewAuditLogger("cipherctl", logging.WithFile(cfg.AuditLog), logging.WithoutStdout())
		if err != nil {
			return fmt.Errorf("open audit log: %w", err)
		}
		a.audit = audit
	} else {
		a.audit = logging.Nop()
	}

	a.painter = newPainter(cfg.Output.Color, a.stdout)
	a.log.Debug("configuration resolved",
		zap.String("recipes_dir", cfg.RecipesDir),
		zap.Int("workers", cfg.Solver.Workers),
		zap.String("color", cfg.Output.Color),
	)
	return nil
}

func (a *app) close() {
	if a.audit != nil {
		_ = a.audit.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	if a.undoGlobals != nil {
		a.undoGlobals()
	}
}

// emit records an audit event; failures only reach the diagnostic log.
func (a *app) emit(event logging.AuditEvent) {
	if err := a.audit.Emit(event); err != nil {
		a.log.Warn("audit emit failed", zap.Error(err))
	}
}
