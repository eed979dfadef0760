package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-kv/pkg/command"
	"github.com/dd0wney/cluso-kv/pkg/config"
	"github.com/dd0wney/cluso-kv/pkg/logging"
	"github.com/dd0wney/cluso-kv/pkg/metrics"
	"github.com/dd0wney/cluso-kv/pkg/repl"
	"github.com/dd0wney/cluso-kv/pkg/storage"
	"github.com/dd0wney/cluso-kv/pkg/tui"
)

// app carries flag values and the session outcome between cobra and main
type app struct {
	configPath     string
	logLevel       string
	prompt         string
	metricsSummary bool

	exitCode int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if a.exitCode == repl.ExitOK {
			a.exitCode = repl.ExitIOError
		}
	}

	stop()
	os.Exit(a.exitCode)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kvstore",
		Short: "In-memory key-value store with nested transactions",
		Long: `kvstore reads one command per line and prints the results.

Commands:
  SET <key> <value>   set a key in the current transaction
  GET <key>           print the value, or NULL
  UNSET <key>         delete a key in the current transaction
  COUNTS <value>      print how many keys hold value
  FIND <value>        print the keys holding value, sorted
  BEGIN               open a nested transaction
  ROLLBACK            discard the innermost transaction
  COMMIT              merge the innermost transaction into its parent
  END                 exit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", os.Getenv(config.EnvConfigPath), "path to a YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&a.metricsSummary, "metrics-summary", false, "print command counters to stderr on exit")
	rootCmd.Flags().StringVar(&a.prompt, "prompt", config.DefaultPrompt, "prompt printed before each line")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Run the full-screen terminal interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	})

	return rootCmd
}

// loadConfig reads the config file and applies flags the user set explicitly
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("prompt") {
		cfg.Prompt = a.prompt
	}
	if cmd.Flags().Changed("metrics-summary") {
		cfg.MetricsSummary = a.metricsSummary
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *app) runREPL(cmd *cobra.Command) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.NewJSONLogger(cmd.ErrOrStderr(), cfg.Level())

	opts := []command.Option{command.WithLogger(logger)}
	var registry *metrics.Registry
	if cfg.MetricsSummary {
		registry = metrics.NewRegistry()
		opts = append(opts, command.WithMetrics(registry))
	}
	interp := command.NewInterpreter(storage.NewLayeredStore(), opts...)

	session := repl.NewSession(interp, cmd.InOrStdin(), cmd.OutOrStdout(),
		repl.WithPrompt(cfg.Prompt),
		repl.WithLogger(logger),
	)

	a.exitCode, err = session.Run(cmd.Context())

	if registry != nil {
		writeSummary(cmd.ErrOrStderr(), registry, logger)
	}
	return err
}

func (a *app) runTUI(cmd *cobra.Command) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	// The UI owns the terminal, so command logging stays off
	interp := command.NewInterpreter(storage.NewLayeredStore())
	err = tui.Run(interp, cfg.TUI.HistoryLimit,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if errors.Is(err, tea.ErrProgramKilled) {
		a.exitCode = repl.ExitInterrupted
		return nil
	}
	return err
}

func writeSummary(w io.Writer, registry *metrics.Registry, logger logging.Logger) {
	if err := registry.WriteSummary(w); err != nil {
		logger.Error("writing metrics summary failed", logging.Error(err))
	}
}
