// Command inkwell is the CLI for the Inkwell journal: add entries, review
// recent writing, and inspect stats, streaks, and period insights from the
// terminal.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scrypster/inkwell/internal/config"
	"github.com/scrypster/inkwell/internal/engine"
	"github.com/scrypster/inkwell/internal/llm"
	"github.com/scrypster/inkwell/internal/storage/sqlite"
	"github.com/scrypster/inkwell/pkg/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "inkwell",
		Short:        "A private journal with sentiment and theme analysis",
		SilenceUsage: true,
	}

	root.AddCommand(newAddCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newStreakCmd())
	root.AddCommand(newInsightCmd())

	return root
}

// openJournal loads config, opens the store, and builds the engine. The CLI
// runs enrichment synchronously, so no workers are started.
func openJournal(ctx context.Context) (*engine.JournalEngine, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := sqlite.NewEntryStore(cfg.Storage.DataPath + "/inkwell.db")
	if err != nil {
		return nil, nil, err
	}

	analyzer, err := llm.NewAnalyzerFromConfig(cfg.LLM)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	var remote engine.RemoteAnalyzer
	if analyzer != nil {
		remote = analyzer
	}

	pipeline := engine.NewEnrichmentPipeline(remote)
	journal, err := engine.NewJournalEngine(ctx, store, pipeline, engine.DefaultConfig())
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Printf("failed to close store: %v", err)
		}
	}
	return journal, cleanup, nil
}

// truncate shortens s to at most max runes, appending an ellipsis when it
// cuts. Truncation happens on rune boundaries so multi-byte text stays intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [text]",
		Short: "Add a journal entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, cleanup, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			entry, err := journal.AddEntrySync(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Printf("Saved entry %s\n", entry.ID)
			fmt.Printf("  sentiment: %s", entry.Sentiment)
			if entry.FallbackUsed {
				fmt.Printf(" (local analysis)")
			}
			fmt.Println()
			fmt.Printf("  themes:    %s\n", strings.Join(entry.Themes, ", "))
			if entry.InsightNote != "" {
				fmt.Printf("  insight:   %s\n", entry.InsightNote)
			}
			for _, s := range entry.Suggestions {
				fmt.Printf("  try:       %s\n", s)
			}
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, cleanup, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			entries := journal.Entries()
			if len(entries) == 0 {
				fmt.Println("No entries yet. Start with: inkwell add \"...\"")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			for _, entry := range entries {
				fmt.Printf("%s  [%s]  %s\n",
					entry.CreatedAt.Format("2006-01-02 15:04"), entry.Sentiment,
					truncate(entry.Text, 72))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum entries to show")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics for the recent window",
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, cleanup, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := journal.Stats(days)
			if err != nil {
				return err
			}

			fmt.Printf("Last %d days: %d entries, %d words (avg %d/entry)\n",
				days, stats.TotalEntries, stats.TotalWords, stats.AvgWordsPerEntry)
			for sentiment, count := range stats.SentimentCounts {
				fmt.Printf("  %-9s %d\n", sentiment, count)
			}
			if len(stats.TopThemes) > 0 {
				fmt.Println("Top themes:")
				for _, stat := range stats.TopThemes {
					fmt.Printf("  %-15s %d\n", stat.Theme, stat.Count)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 30, "window size in days")
	return cmd
}

func newStreakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the current consecutive-day streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, cleanup, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			streak := journal.Streak()
			switch streak {
			case 0:
				fmt.Println("No active streak. Today is a good day to start one.")
			case 1:
				fmt.Println("1 day streak.")
			default:
				fmt.Printf("%d day streak. Keep going!\n", streak)
			}
			return nil
		},
	}
}

func newInsightCmd() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Show patterns and recommendations for the current period",
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, cleanup, err := openJournal(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			insight, err := journal.Insight(types.Period(period))
			if err != nil {
				return err
			}

			if insight.EntryCount == 0 {
				fmt.Printf("No entries this %s yet.\n", insight.Period)
				return nil
			}

			fmt.Printf("This %s: %d entries, mostly %s\n",
				insight.Period, insight.EntryCount, insight.DominantSentiment)
			if len(insight.TopThemes) > 0 {
				fmt.Printf("Themes: %s\n", strings.Join(insight.TopThemes, ", "))
			}
			for _, p := range insight.Patterns {
				fmt.Printf("  • %s\n", p)
			}
			if len(insight.Recommendations) > 0 {
				fmt.Println("Suggestions:")
				for _, rec := range insight.Recommendations {
					fmt.Printf("  • %s\n", rec)
				}
			}
			if len(insight.PositiveHighlights) > 0 {
				fmt.Println("Highlights:")
				for _, entry := range insight.PositiveHighlights {
					fmt.Printf("  %s  %s\n",
						entry.CreatedAt.Format("Jan 2"), truncate(entry.Text, 60))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&period, "period", "p", "week", "period to summarize (week or month)")
	return cmd
}
