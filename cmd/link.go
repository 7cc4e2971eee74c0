package cmd

import (
	"fmt"
	"strings"

	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/spf13/cobra"
)

func relationNames() string {
	names := make([]string, len(model.Relations))
	for i, r := range model.Relations {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

var linkCmd = &cobra.Command{
	Use:   "link <id> <relationship> <target>",
	Short: "Link two beads",
	Long:  "Link two beads. The relationship is one of: " + relationNames() + ".\nThe inverse edge is recorded on the target, except for discovered-from.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		rel, err := model.ParseRelation(args[1])
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}

		var res *store.LinkResult
		err = s.Update(func(c *store.Collection) error {
			r, err := c.Link(args[0], rel, args[2])
			if err != nil {
				return err
			}
			res = r
			return nil
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return format.JSON(out, map[string]any{
				"source":       res.Source.ID,
				"relationship": res.Relation,
				"target":       res.Target.ID,
				"added":        res.Added,
			})
		}
		if quiet {
			return nil
		}
		fmt.Fprintf(out, "Linked: %s --%s--> %s\n", res.Source.ID, res.Relation, res.Target.ID)
		if !res.Added {
			fmt.Fprintln(out, "  (already linked)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
}
