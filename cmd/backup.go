package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/verbiz/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup of all progress and settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		var w io.Writer = cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create backup file: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := store.Export(cmd.Context(), d.store, w, nowFunc()); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Restore progress and settings from a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open backup: %w", err)
		}
		defer f.Close()

		d, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		res, err := store.Import(cmd.Context(), d.store, f)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		d.log.WithFields(logrus.Fields{
			"mode": res.Mode,
			"keys": res.RestoredKeys,
		}).Info("backup imported")
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d keys from %s backup.\n", res.RestoredKeys, res.Mode)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
}
