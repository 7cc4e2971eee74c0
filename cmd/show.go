package cmd

import (
	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show bead details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		short, _ := cmd.Flags().GetBool("short")
		asYAML, _ := cmd.Flags().GetBool("yaml")

		s, err := openStore()
		if err != nil {
			return err
		}

		return s.View(func(beads []*model.Bead) error {
			bead, err := store.Lookup(beads, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case jsonOut:
				return format.JSON(out, bead)
			case asYAML:
				return format.YAML(out, bead)
			case short:
				format.Short(out, bead)
				return nil
			}
			format.Detail(out, bead, graph.Build(beads).BlockersOf(bead.ID))
			return nil
		})
	},
}

func init() {
	showCmd.Flags().Bool("short", false, "one-line summary")
	showCmd.Flags().Bool("yaml", false, "output as YAML")
	rootCmd.AddCommand(showCmd)
}
