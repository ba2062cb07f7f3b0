package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/verbiz/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		s := d.settings.Settings()
		for _, name := range settings.Names() {
			v, _ := s.Value(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", name, v)
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set NAME VALUE",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.settings.Set(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		v, _ := d.settings.Settings().Value(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], v)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}
