package cmd

import (
	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/model"
	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:     "context",
	Aliases: []string{"prime"},
	Short:   "Show session context",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		return s.View(func(beads []*model.Bead) error {
			g := graph.Build(beads)
			ctx := g.Context()
			if jsonOut {
				return format.JSON(cmd.OutOrStdout(), format.NewContextView(ctx))
			}
			format.Context(cmd.OutOrStdout(), ctx, g)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
}
