package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rustyeddy/paperbot/config"
	"github.com/rustyeddy/paperbot/journal"
	"github.com/rustyeddy/paperbot/sim"
	"github.com/spf13/cobra"
)

func newRunCmd(rc *RootConfig) *cobra.Command {
	var (
		duration time.Duration
		poll     time.Duration
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the paper-trading engine",
		Long: `Run starts the simulated trading engine and polls its snapshot once per
interval, printing a one-line summary. Stops on Ctrl-C or when --duration
elapses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rc)
			if err != nil {
				return err
			}

			j, err := openJournal(cfg)
			if err != nil {
				return err
			}
			defer j.Close()

			engine := sim.NewEngine(cfg, j)
			engine.Start()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			var deadline <-chan time.Time
			if duration > 0 {
				deadline = time.After(duration)
			}

			ticker := time.NewTicker(poll)
			defer ticker.Stop()

		loop:
			for {
				select {
				case <-sigCh:
					fmt.Println("interrupted, stopping...")
					break loop
				case <-deadline:
					break loop
				case <-ticker.C:
					if !quiet {
						printSummary(engine.Snapshot())
					}
				}
			}

			engine.Stop()
			waitStopped(engine, 5*time.Second)
			printSummary(engine.Snapshot())
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (0 = run until interrupted)")
	cmd.Flags().DurationVar(&poll, "poll", time.Second, "Snapshot poll interval")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Only print the final summary")
	return cmd
}

// waitStopped polls until the engine reports stopped or the deadline passes.
// Stop is cooperative, so the last in-flight tick is allowed to finish.
func waitStopped(engine *sim.Engine, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if engine.Snapshot().Status == string(sim.StatusStopped) {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func printSummary(s sim.Snapshot) {
	open := 0
	for _, p := range s.Positions {
		if p.Qty > 0 {
			open++
		}
	}
	fmt.Printf("%s status=%s cash=%.2f equity=%.2f pnl=%+.2f open=%d trades=%d\n",
		s.TS, s.Status, s.Cash, s.Equity, s.PnL, open, len(s.Trades))
}

func loadConfig(rc *RootConfig) (*config.Config, error) {
	cfg := config.Default()
	if rc.ConfigPath != "" {
		loaded, err := config.LoadFromFile(rc.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if rc.DBPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = rc.DBPath
	}
	return cfg, nil
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open journal db: %w", err)
		}
		return j, nil
	case "csv":
		j, err := journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.EquityFile)
		if err != nil {
			return nil, fmt.Errorf("open journal csv: %w", err)
		}
		return j, nil
	default:
		return journal.Nop{}, nil
	}
}
