package cmd

import (
	"fmt"
	"strings"

	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/model"
	"github.com/spf13/cobra"
)

var blockedCmd = &cobra.Command{
	Use:   "blocked",
	Short: "Show beads waiting on an open blocker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		return s.View(func(beads []*model.Bead) error {
			g := graph.Build(beads)
			blocked := g.Blocked()
			out := cmd.OutOrStdout()

			if jsonOut {
				if blocked == nil {
					blocked = []*model.Bead{}
				}
				return format.JSON(out, blocked)
			}
			if len(blocked) == 0 {
				fmt.Fprintln(out, "No blocked beads.")
				return nil
			}

			format.Table(out, blocked)
			fmt.Fprintln(out)
			for _, b := range blocked {
				blockers := g.BlockersOf(b.ID)
				ids := make([]string, len(blockers))
				for i, bl := range blockers {
					ids[i] = bl.ID
				}
				fmt.Fprintf(out, "  %s blocked by: %s\n", b.ID, strings.Join(ids, ", "))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(blockedCmd)
}
