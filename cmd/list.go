package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/graph"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List beads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		agent, _ := cmd.Flags().GetString("agent")
		beadType, _ := cmd.Flags().GetString("type")
		ready, _ := cmd.Flags().GetBool("ready")
		blocked, _ := cmd.Flags().GetBool("blocked")
		showAll, _ := cmd.Flags().GetBool("all")
		sinceStr, _ := cmd.Flags().GetString("since")
		sortBy, _ := cmd.Flags().GetString("sort")
		reverse, _ := cmd.Flags().GetBool("reverse")
		limit, _ := cmd.Flags().GetInt("limit")
		table, _ := cmd.Flags().GetBool("table")

		var since time.Time
		if sinceStr != "" {
			t, err := parseSince(sinceStr, time.Now())
			if err != nil {
				return err
			}
			since = t
		}

		s, err := openStore()
		if err != nil {
			return err
		}

		return s.View(func(all []*model.Bead) error {
			beads, err := store.Filter(all, store.FilterOptions{
				Status:  status,
				Agent:   agent,
				Type:    beadType,
				Ready:   ready,
				Blocked: blocked,
				All:     showAll,
				Since:   since,
				Sort:    sortBy,
				Reverse: reverse,
				Limit:   limit,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return format.JSON(out, beads)
			}
			if table {
				format.Table(out, beads)
				return nil
			}
			format.List(out, beads, graph.Build(all))
			return nil
		})
	},
}

func init() {
	listCmd.Flags().StringP("status", "s", "", "filter by status (open, in-progress, blocked, closed)")
	listCmd.Flags().StringP("agent", "a", "", "filter by agent")
	listCmd.Flags().StringP("type", "t", "", "filter by type")
	listCmd.Flags().BoolP("ready", "r", false, "show only ready (unblocked) beads")
	listCmd.Flags().BoolP("blocked", "b", false, "show only blocked beads")
	listCmd.Flags().Bool("all", false, "include closed beads")
	listCmd.Flags().String("since", "", "updated since (YYYY-MM-DD or e.g. \"yesterday\", \"3 days ago\")")
	listCmd.Flags().String("sort", "", "sort by: priority, created, updated, id")
	listCmd.Flags().Bool("reverse", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "max results (0 for unlimited)")
	listCmd.Flags().Bool("table", false, "compact table instead of status groups")
	rootCmd.AddCommand(listCmd)
}

// parseSince reads a calendar date or a natural-language moment relative to
// base.
func parseSince(text string, base time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if t, err := time.ParseInLocation("2006-01-02", text, base.Location()); err == nil {
		return t, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	r, err := w.Parse(text, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --since %q: %v", model.ErrInvalid, text, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: --since %q: not a date", model.ErrInvalid, text)
	}
	return r.Time, nil
}
