package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/verbiz/internal/quiz"
	"github.com/abhisek/verbiz/internal/vocab"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long: "Reset the saved tests and word mastery of one dataset with --dataset, " +
		"or all progress with --all. Settings are kept either way.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset, _ := cmd.Flags().GetString("dataset")
		all, _ := cmd.Flags().GetBool("all")

		switch {
		case dataset != "" && all:
			return errors.New("use --dataset or --all, not both")
		case dataset == "" && !all:
			return errors.New("specify --dataset NAME or --all")
		}

		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		ctx := cmd.Context()

		if all {
			if err := d.progress.Reset(ctx, nowFunc()); err != nil {
				return fmt.Errorf("reset progress: %w", err)
			}
			d.mastery.Reload(ctx)
			d.log.Info("all progress reset")
			fmt.Fprintln(cmd.OutOrStdout(), "All progress reset.")
			return nil
		}

		ds, err := d.registry.Get(dataset)
		if err != nil {
			return err
		}
		if err := quiz.NewStorage(d.store, d.log).ClearDataset(ctx, ds.Name); err != nil {
			return fmt.Errorf("clear saved tests: %w", err)
		}
		d.mastery.Delete(ctx, vocab.Keys(ds.Items)...)
		d.log.WithField("dataset", ds.Name).Info("dataset progress reset")
		fmt.Fprintf(cmd.OutOrStdout(), "Progress for %s reset.\n", ds.DisplayTitle())
		return nil
	},
}

func init() {
	resetCmd.Flags().StringP("dataset", "d", "", "Dataset to reset")
	resetCmd.Flags().Bool("all", false, "Reset all progress")
}
