package cmd

import (
	"fmt"

	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/model"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		return s.View(func(beads []*model.Bead) error {
			st := graph.Build(beads).Stats()
			out := cmd.OutOrStdout()
			if jsonOut {
				return format.JSON(out, st)
			}

			fmt.Fprintf(out, "Total:       %d\n", st.Total)
			fmt.Fprintf(out, "Open:        %d\n", st.Open)
			fmt.Fprintf(out, "In Progress: %d\n", st.InProgress)
			fmt.Fprintf(out, "Blocked:     %d (graph: %d)\n", st.Blocked, st.DerivedBlocked)
			fmt.Fprintf(out, "Ready:       %d\n", st.Ready)
			fmt.Fprintf(out, "Closed:      %d\n", st.Closed)

			if len(st.ByType) > 0 {
				fmt.Fprintln(out, "\nBy Type:")
				for _, t := range model.BeadTypes {
					if c, ok := st.ByType[t]; ok {
						fmt.Fprintf(out, "  %-12s %d\n", t, c)
					}
				}
			}
			if len(st.ByPriority) > 0 {
				fmt.Fprintln(out, "\nBy Priority:")
				for _, p := range model.Priorities {
					if c, ok := st.ByPriority[p]; ok {
						fmt.Fprintf(out, "  %-12s %d\n", p, c)
					}
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
