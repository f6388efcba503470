package cli

import (
	"fmt"
	"time"

	"github.com/rustyeddy/paperbot/journal"
	"github.com/spf13/cobra"
)

func newJournalCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Query the SQLite trade journal",
	}

	var limit int
	tradesCmd := &cobra.Command{
		Use:   "trades",
		Short: "List recent executed trades, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := rc.DBPath
			if dbPath == "" {
				dbPath = "./paperbot.sqlite"
			}
			j, err := journal.NewSQLite(dbPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer j.Close()

			recs, err := j.ListRecentTrades(limit)
			if err != nil {
				return fmt.Errorf("query trades: %w", err)
			}
			if len(recs) == 0 {
				fmt.Println("no trades recorded")
				return nil
			}
			for _, r := range recs {
				fmt.Printf("%s  %-4s %-10s qty=%-8.2f @ %-8.2f %s\n",
					r.Time.UTC().Format(time.RFC3339), r.Side, r.Symbol, r.Qty, r.Price, r.Reason)
			}
			return nil
		},
	}
	tradesCmd.Flags().IntVar(&limit, "limit", 30, "Maximum trades to list")

	cmd.AddCommand(tradesCmd)
	return cmd
}
