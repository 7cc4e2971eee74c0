package cmd

import (
	"fmt"

	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a bead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		title, _ := cmd.Flags().GetString("title")
		agent, _ := cmd.Flags().GetString("agent")
		priority, _ := cmd.Flags().GetString("priority")
		description, _ := cmd.Flags().GetString("description")
		note, _ := cmd.Flags().GetString("note")

		s, err := openStore()
		if err != nil {
			return err
		}

		var bead *model.Bead
		err = s.Update(func(c *store.Collection) error {
			b, err := c.Update(args[0], store.UpdateOptions{
				Status:      status,
				Title:       title,
				Agent:       agent,
				Priority:    priority,
				Description: description,
				Note:        note,
			})
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
			fmt.Fprintf(out, "Updated: %s\n", bead.ID)
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().StringP("status", "s", "", "new status (open, in-progress, blocked, closed)")
	updateCmd.Flags().String("title", "", "new title")
	updateCmd.Flags().StringP("agent", "a", "", "assigned agent")
	updateCmd.Flags().StringP("priority", "p", "", "priority (low, medium, high, critical)")
	updateCmd.Flags().StringP("description", "d", "", "description")
	updateCmd.Flags().StringP("note", "n", "", "append a note")
	rootCmd.AddCommand(updateCmd)
}
