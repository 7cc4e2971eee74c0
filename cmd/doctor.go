package cmd

import (
	"errors"
	"fmt"

	"github.com/RamXX/beads/internal/enforce"
	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/RamXX/beads/internal/ui"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate store integrity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fix, _ := cmd.Flags().GetBool("fix")

		s, err := openStore()
		if err != nil {
			return err
		}

		var problems []enforce.Problem
		var total int
		if err := s.View(func(beads []*model.Bead) error {
			problems = enforce.Check(beads)
			total = len(beads)
			return nil
		}); err != nil {
			return err
		}

		fixed := 0
		if fix {
			err := s.Update(func(c *store.Collection) error {
				fixed = enforce.RepairInverses(c.Beads)
				if fixed == 0 {
					return errNothingToFix
				}
				return nil
			})
			if err != nil && !errors.Is(err, errNothingToFix) {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			if problems == nil {
				problems = []enforce.Problem{}
			}
			return format.JSON(out, map[string]any{
				"beads":    total,
				"problems": problems,
				"fixed":    fixed,
			})
		}

		for _, p := range problems {
			fmt.Fprintln(out, p)
		}
		if fixed > 0 {
			fmt.Fprintf(out, "  -> added %d missing inverse edge(s)\n", fixed)
		}
		if len(problems) == 0 {
			fmt.Fprintln(out, ui.RenderPass(fmt.Sprintf("All %d beads passed validation.", total)))
			return nil
		}
		fmt.Fprintf(out, "\n%d problem(s) found across %d beads.\n", len(problems), total)
		if enforce.HasErrors(problems) && !fix {
			return fmt.Errorf("store has errors (run 'beads doctor --fix' to repair missing inverse edges)")
		}
		return nil
	},
}

// errNothingToFix aborts the repair transaction so an untouched collection
// is not rewritten.
var errNothingToFix = errors.New("nothing to fix")

func init() {
	doctorCmd.Flags().Bool("fix", false, "add missing inverse edges")
	rootCmd.AddCommand(doctorCmd)
}
