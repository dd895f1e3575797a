package cli

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/synthgrid/tabwatch/internal/config"
	"github.com/synthgrid/tabwatch/internal/monitor"
	"github.com/synthgrid/tabwatch/internal/stream"
)

var watchURL string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a generation pipeline live",
	Long: `Watch connects to the generation event stream and shows a live view:
overall progress, the rolling activity feed, and per-agent performance.

Key bindings: p pause/resume, c clear, / search, f filter by agent, q quit.

Examples:
  tabwatch watch
  tabwatch watch --url ws://feed.internal:8585/stream`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchURL, "url", "", "stream endpoint (default from TABWATCH_STREAM_URL)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("watch needs a terminal; use 'tabwatch replay' for non-interactive output")
	}

	// Logs go to the file only: stderr would corrupt the rendered view.
	logger, cleanup := config.SetupFileLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	agents, err := cfg.Agents()
	if err != nil {
		return fmt.Errorf("load agent roster: %w", err)
	}

	mon := monitor.New(monitor.Options{
		Capacity: cfg.HistorySize,
		Agents:   agents,
		Logger:   logger,
	})

	endpoint := watchURL
	if endpoint == "" {
		endpoint = cfg.StreamURL
	}

	p := tea.NewProgram(newWatchModel(mon))

	// The reader owns the connection; cancelling the context on exit
	// guarantees no write lands after the view is torn down.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		err := stream.New(endpoint, logger).Run(ctx, mon.Ingest)
		p.Send(streamDoneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch UI error: %w", err)
	}
	return nil
}
