package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a test right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset, _ := cmd.Flags().GetString("dataset")
		return runApp(cmd, dataset, true)
	},
}

func init() {
	playCmd.Flags().StringP("dataset", "d", "", "Dataset to test (defaults to the last one opened)")
}
