package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List available datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %-24s  %5s  %-5s  %s\n", "Name", "Title", "Words", "Forms", "Source")
		fmt.Fprintln(out, strings.Repeat("─", 72))

		for _, name := range d.registry.Names() {
			ds, err := d.registry.Get(name)
			if err != nil {
				continue
			}
			forms := "no"
			if ds.HasForms() {
				forms = "yes"
			}
			fmt.Fprintf(out, "%-16s  %-24s  %5d  %-5s  %s\n",
				ds.Name, ds.DisplayTitle(), len(ds.Items), forms, ds.Source)
		}
		return nil
	},
}
