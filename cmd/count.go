package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count beads grouped by a field",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		by, _ := cmd.Flags().GetString("by")
		status, _ := cmd.Flags().GetString("status")
		showAll, _ := cmd.Flags().GetBool("all")

		s, err := openStore()
		if err != nil {
			return err
		}

		var counts map[string]int
		err = s.View(func(all []*model.Bead) error {
			beads, err := store.Filter(all, store.FilterOptions{Status: status, All: showAll})
			if err != nil {
				return err
			}
			counts, err = countBy(beads, by)
			return err
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return format.JSON(out, counts)
		}

		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		total := 0
		for _, k := range keys {
			fmt.Fprintf(out, "%-20s %d\n", k, counts[k])
			total += counts[k]
		}
		fmt.Fprintf(out, "%-20s %d\n", "TOTAL", total)
		return nil
	},
}

func countBy(beads []*model.Bead, by string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, b := range beads {
		switch strings.ToLower(by) {
		case "status":
			counts[string(b.Status)]++
		case "type":
			counts[string(b.Type)]++
		case "priority":
			counts[string(b.Priority)]++
		case "agent":
			key := b.Agent
			if key == "" {
				key = "(unassigned)"
			}
			counts[key]++
		case "tag":
			if len(b.Tags) == 0 {
				counts["(untagged)"]++
			}
			for _, t := range b.Tags {
				counts[t]++
			}
		default:
			return nil, fmt.Errorf("%w: --by %q: use status, type, priority, agent, or tag", model.ErrInvalid, by)
		}
	}
	return counts, nil
}

func init() {
	countCmd.Flags().String("by", "status", "group by: status, type, priority, agent, tag")
	countCmd.Flags().StringP("status", "s", "", "filter by status before counting")
	countCmd.Flags().Bool("all", false, "include closed beads")
	rootCmd.AddCommand(countCmd)
}
