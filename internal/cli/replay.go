package cli

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/synthgrid/tabwatch/internal/config"
	"github.com/synthgrid/tabwatch/internal/monitor"
)

var (
	replayDelay time.Duration
	replayGrep  string
	replayAgent string
)

var replayCmd = &cobra.Command{
	Use:   "replay <frames.jsonl>",
	Short: "Classify a captured frame log and print the result",
	Long: `Replay feeds a captured frame log (one frame per line, structured JSON
or plain text) through the classification engine and prints the records
oldest first, followed by the per-agent summary.

Examples:
  tabwatch replay run.jsonl
  tabwatch replay run.jsonl --grep privacy
  tabwatch replay run.jsonl --agent "Data Generator" --delay 100ms`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().DurationVar(&replayDelay, "delay", 0, "pause between frames")
	replayCmd.Flags().StringVar(&replayGrep, "grep", "", "filter records by message or agent substring")
	replayCmd.Flags().StringVar(&replayAgent, "agent", monitor.FilterAll, "filter records by exact agent name")
}

func runReplay(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open frame log: %w", err)
	}
	defer file.Close()

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

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	frames := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		mon.IngestRaw(line)
		frames++
		if replayDelay > 0 {
			time.Sleep(replayDelay)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read frame log: %w", err)
	}

	records := mon.Query(replayGrep, replayAgent)
	if len(records) == 0 {
		fmt.Println("No matching records.")
		return nil
	}

	// Oldest first reads naturally in a scrollback.
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		fmt.Printf("%s  %-8s %-12s %-20s %s\n",
			rec.Timestamp.Format("15:04:05"), rec.Level, rec.Status, rec.Agent, rec.Message)
	}

	fmt.Printf("\n%d frames, %d retained, progress %d%%\n", frames, len(mon.Records()), mon.Progress())
	fmt.Println("\nAgents:")
	for _, a := range mon.Agents() {
		if a.TasksCompleted == 0 {
			continue
		}
		fmt.Printf("  %-20s %-8s tasks:%-3d ok:%3.0f%%\n",
			a.Name, a.Status, a.TasksCompleted, a.SuccessRate)
	}

	return nil
}
