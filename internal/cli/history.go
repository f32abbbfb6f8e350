package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/docmineai/docmine/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent extraction runs from the local journal",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open(journalPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	recs, err := db.ListRecent(context.Background(), historyLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	for _, rec := range recs {
		items := 0
		for _, n := range rec.ItemCounts {
			items += n
		}
		cmd.Printf("%s  %-8s %3d docs %4d chunks %4d items  %s  %s\n",
			rec.StartedAt.Local().Format(time.DateTime),
			rec.Model,
			rec.Documents,
			rec.Chunks,
			items,
			rec.Duration.Round(time.Millisecond),
			rec.OutputPath,
		)
	}
	return nil
}
