package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hanak0/ggsweep/storage"
)

var scoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the latest results",
	Long: `Display the latest finished games and the number of wins and
losses per game mode.

Examples:
  ggsweep scores
  ggsweep scores --limit 20`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Results(scoresLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'ggsweep' to record the first one!")
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %-7s  %-8s  %-5s  %-8s  %s\n", "Date", "Mode", "Board", "Mines", "Outcome", "Time")
	fmt.Fprintf(out, "  %-16s  %-7s  %-8s  %-5s  %-8s  %s\n", "----", "----", "-----", "-----", "-------", "----")
	for _, r := range results {
		fmt.Fprintf(out, "  %-16s  %-7s  %-8s  %-5d  %-8s  %s\n",
			r.PlayedAt.Local().Format("2006-01-02 15:04"),
			r.Mode,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Mines,
			r.Outcome,
			r.Duration.Round(100*time.Millisecond),
		)
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	for _, st := range stats {
		fmt.Fprintf(out, "%s: %d won, %d lost\n", st.Mode, st.Wins, st.Losses)
	}
	return nil
}

func init() {
	scoresCmd.Flags().IntVarP(&scoresLimit, "limit", "n", 10, "Number of results to show")
}
