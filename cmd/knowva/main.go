package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"knowva_cli/pkg/answer"
	"knowva_cli/pkg/config"
	"knowva_cli/pkg/logging"
	"knowva_cli/pkg/ui"
	"knowva_cli/pkg/version"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errAnswerFailed exits with status 1 after the fallback reply was printed.
var errAnswerFailed = errors.New("answer service request failed")

type options struct {
	configPath string
	endpoint   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errAnswerFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "knowva",
		Short: "Ask questions about Angel One services and insurance products",
		Long: "knowva is a terminal chat client for the Knowva answer service.\n" +
			"Run it in a terminal for the conversation view, or pipe questions\n" +
			"to it one per line.",
		Version:       version.Summary(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, client, err := setup(opts)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if isTerminal(in) {
				return runTUI(cmd.Context(), cfg, client)
			}
			return runPipe(cmd.Context(), client, in, cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.GetConfigPath(), "config file (.json, .yaml or .yml)")
	cmd.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "answer service URL, overrides the config file and "+config.EnvEndpoint)

	cmd.AddCommand(newAskCmd(opts), newVersionCmd())
	return cmd
}

// setup loads configuration, starts logging and builds the service client.
func setup(opts *options) (config.Config, *answer.Client, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to load config %s: %w", opts.configPath, err)
	}
	cfg.ApplyEnv(nil)
	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid config %s: %w", opts.configPath, err)
	}

	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	slog.Info("knowva_start",
		"version", version.Summary(),
		"config_path", opts.configPath,
		"endpoint", cfg.Endpoint,
	)

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	return cfg, answer.NewClient(cfg.Endpoint, timeout), nil
}

func runTUI(ctx context.Context, cfg config.Config, client answer.Asker) error {
	model := ui.NewModel(cfg, client, ui.WithContext(ctx))
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		// A signal cancels ctx, which kills the program; that is a normal exit.
		if ctx.Err() == nil || !errors.Is(err, tea.ErrProgramKilled) {
			slog.Error("tui_failed", "error", err)
			return fmt.Errorf("failed to run UI: %w", err)
		}
	}
	slog.Info("knowva_exit")
	return nil
}

func runPipe(ctx context.Context, client answer.Asker, in io.Reader, out io.Writer) error {
	failed, err := ui.NewPipeHandler(client, out).Run(ctx, in)
	if err != nil {
		return err
	}
	if failed > 0 {
		return errAnswerFailed
	}
	return nil
}

// isTerminal reports whether in is an interactive terminal. Readers that are
// not files are treated as pipes.
func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
