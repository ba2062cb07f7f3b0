package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/verbiz/internal/mastery"
	"github.com/abhisek/verbiz/internal/vocab"
)

// nowFunc is the clock used by commands.
var nowFunc = time.Now

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		days, _ := cmd.Flags().GetInt("days")
		out := cmd.OutOrStdout()
		p := d.progress
		totals := p.Totals()

		fmt.Fprintf(out, "Level %d, %d XP\n", p.Level(), p.XP())
		fmt.Fprintf(out, "Streak %d (best %d)\n", p.Streak(), p.BestStreak())
		fmt.Fprintf(out, "Today %d/%d words\n", p.DailyWordsStudied(), d.settings.Settings().DailyGoal)
		fmt.Fprintf(out, "%d study days, %d answers, %d%% correct\n\n",
			len(p.StudyDays()), totals.TotalAnswers, totals.Accuracy())

		fmt.Fprintf(out, "%-16s  %6s  %8s  %11s  %6s  %11s\n",
			"Dataset", "Words", "Learned", "In progress", "Hard", "Not started")
		fmt.Fprintln(out, strings.Repeat("─", 68))
		for _, name := range d.registry.Names() {
			ds, err := d.registry.Get(name)
			if err != nil {
				continue
			}
			c := d.mastery.Counts(vocab.Keys(ds.Items))
			fmt.Fprintf(out, "%-16s  %6d  %8d  %11d  %6d  %11d\n",
				name, len(ds.Items),
				c[mastery.StatusLearned], c[mastery.StatusProgress],
				c[mastery.StatusHard], c[mastery.StatusNotStarted])
		}

		recent := p.RecentDays(days)
		if len(recent) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-12s  %6s  %8s\n", "Day", "Words", "Correct")
		fmt.Fprintln(out, strings.Repeat("─", 30))
		for _, day := range recent {
			fmt.Fprintf(out, "%-12s  %6d  %7d%%\n",
				day.Date.Format("2006-01-02"), day.WordsStudied, day.Accuracy())
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("days", 7, "Number of recent days to list")
}
