package cmd

import (
	"fmt"

	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress <id>",
	Short: "Mark a bead as in-progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		var bead *model.Bead
		err = s.Update(func(c *store.Collection) error {
			b, err := c.Progress(args[0])
			if err != nil {
				return err
			}
			bead = b
			return nil
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return format.JSON(out, bead)
		}
		if !quiet {
			fmt.Fprintf(out, "In progress: %s - %s\n", bead.ID, bead.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
}
