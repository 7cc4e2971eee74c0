package cmd

import (
	"fmt"

	"github.com/RamXX/beads/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a .beads directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := startDir()
		if err != nil {
			return err
		}
		root, created, err := store.Init(dir)
		if err != nil {
			return err
		}
		if quiet {
			return nil
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized beads at %s\n", root)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Beads already initialized at %s\n", root)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
