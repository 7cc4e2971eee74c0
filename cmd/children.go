package cmd

import (
	"fmt"

	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/spf13/cobra"
)

var childrenCmd = &cobra.Command{
	Use:     "children <id>",
	Aliases: []string{"tree"},
	Short:   "Show the child hierarchy of a bead and its progress",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		return s.View(func(beads []*model.Bead) error {
			bead, err := store.Lookup(beads, args[0])
			if err != nil {
				return err
			}
			g := graph.Build(beads)
			tree := g.Tree(bead.ID)
			progress := g.ChildProgress(bead.ID)

			out := cmd.OutOrStdout()
			if jsonOut {
				return format.JSON(out, map[string]any{
					"tree":     tree,
					"progress": progress,
				})
			}
			format.Tree(out, tree)
			fmt.Fprintln(out)
			fmt.Fprintln(out, format.ProgressLine(progress))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(childrenCmd)
}
