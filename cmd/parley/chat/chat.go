package chatcmder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/parleyhq/parley/pkg/config"
	"github.com/parleyhq/parley/pkg/llm"
	"github.com/parleyhq/parley/pkg/logger"
	"github.com/parleyhq/parley/pkg/repl"
	"github.com/parleyhq/parley/pkg/transcript"
	"github.com/parleyhq/parley/pkg/tui"
	"github.com/parleyhq/parley/pkg/turns"
)

const chatLongDesc string = `Chat with a hosted text-generation model.

Reads the bearer token from PARLEY_API_TOKEN (or HF_API_TOKEN) and
sends each submitted line as a prompt. The reply lands in place of
the pending marker.

Examples:
  parley chat
  parley chat --endpoint https://api-inference.huggingface.co/models/gpt2
  echo "hello" | parley chat --plain`

const chatShortDesc string = "Chat with a text-generation model"

type chatCommander struct {
	configPath string
	endpoint   string
	plain      bool
	debug      bool
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to TOML config file")
	cmd.Flags().StringVar(&cmder.endpoint, "endpoint", "", "Text-generation endpoint URL")
	cmd.Flags().BoolVar(&cmder.plain, "plain", false, "Line mode instead of the terminal UI")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *chatCommander) run(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if c.endpoint != "" {
		cfg.Endpoint = c.endpoint
	}
	if c.debug {
		cfg.Debug = true
	}
	if cfg.Token == "" {
		return fmt.Errorf("no API token: set %s", config.EnvAPIToken)
	}

	useTUI := term.IsTerminal(int(os.Stdin.Fd())) && !c.plain

	var log *zap.Logger
	if useTUI {
		// Stdout belongs to the terminal renderer in TUI mode.
		fileLog, cleanup, err := logger.NewFileLogger(cfg.Debug, logPath())
		if err != nil {
			log = zap.NewNop()
		} else {
			log = fileLog
			defer cleanup()
		}
	} else {
		log = logger.NewLogger(cfg.Debug)
		defer log.Sync()
	}

	log.Info("parley starting",
		zap.String("endpoint", cfg.Endpoint),
		zap.Bool("tui", useTUI),
		zap.Bool("debug", cfg.Debug),
	)

	sink := transcript.New()
	client := llm.NewClient(cfg.Endpoint, cfg.Token, log.Named("llm"))
	ctrl := turns.NewController(sink, client, log.Named("turns"))

	if useTUI {
		return tui.Run(ctx, sink, ctrl)
	}
	return repl.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), sink, ctrl)
}

func logPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "parley", "parley.log")
}
