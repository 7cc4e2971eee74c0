package cmd

import (
	"fmt"

	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/spf13/cobra"
)

type closeView struct {
	Bead      *model.Bead   `json:"bead"`
	Cascaded  []*model.Bead `json:"cascaded"`
	Unblocked []*model.Bead `json:"unblocked"`
}

var closeCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a bead",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, _ := cmd.Flags().GetString("note")

		s, err := openStore()
		if err != nil {
			return err
		}

		var res *store.CloseResult
		err = s.Update(func(c *store.Collection) error {
			r, err := c.Close(args[0], note)
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
			view := closeView{Bead: res.Bead, Cascaded: []*model.Bead{}, Unblocked: []*model.Bead{}}
			view.Cascaded = append(view.Cascaded, res.Cascaded...)
			view.Unblocked = append(view.Unblocked, res.Unblocked...)
			return format.JSON(out, view)
		}

		fmt.Fprintf(out, "Closed: %s - %s\n", res.Bead.ID, res.Bead.Title)
		if quiet {
			return nil
		}
		for _, b := range res.Cascaded {
			fmt.Fprintf(out, "  also closed %s: %s\n", b.ID, b.Title)
		}
		if len(res.Unblocked) > 0 {
			fmt.Fprintln(out, "Unblocked:")
			for _, b := range res.Unblocked {
				fmt.Fprintf(out, "  %s: %s\n", b.ID, b.Title)
			}
		}
		return nil
	},
}

func init() {
	closeCmd.Flags().StringP("note", "n", "", "closing note")
	rootCmd.AddCommand(closeCmd)
}
