package cmd

import (
	"strings"

	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/spf13/cobra"
)

var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "Show actionable beads (open, no open blockers)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		agent, _ := cmd.Flags().GetString("agent")
		sortBy, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore()
		if err != nil {
			return err
		}

		return s.View(func(beads []*model.Bead) error {
			ready := graph.Build(beads).Ready()
			if agent != "" {
				var tmp []*model.Bead
				for _, b := range ready {
					if strings.EqualFold(b.Agent, agent) {
						tmp = append(tmp, b)
					}
				}
				ready = tmp
			}
			ready, err := store.Filter(ready, store.FilterOptions{Sort: sortBy, Limit: limit})
			if err != nil {
				return err
			}

			if jsonOut {
				return format.JSON(cmd.OutOrStdout(), ready)
			}
			format.Table(cmd.OutOrStdout(), ready)
			return nil
		})
	},
}

func init() {
	readyCmd.Flags().StringP("agent", "a", "", "filter by agent")
	readyCmd.Flags().String("sort", "priority", "sort by: priority, created, updated, id")
	readyCmd.Flags().IntP("limit", "n", 0, "max results")
	rootCmd.AddCommand(readyCmd)
}
