package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new bead",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.Join(args, " ")
		beadType, _ := cmd.Flags().GetString("type")
		agent, _ := cmd.Flags().GetString("agent")
		priority, _ := cmd.Flags().GetString("priority")
		tags, _ := cmd.Flags().GetString("tags")
		files, _ := cmd.Flags().GetString("files")
		description, _ := cmd.Flags().GetString("description")
		parent, _ := cmd.Flags().GetString("parent")
		bodyFile, _ := cmd.Flags().GetString("body-file")

		if bodyFile != "" {
			body, err := readBodyFile(bodyFile)
			if err != nil {
				return err
			}
			description = body
		}

		s, err := openStore()
		if err != nil {
			return err
		}

		var bead *model.Bead
		err = s.Update(func(c *store.Collection) error {
			b, err := c.Add(store.AddOptions{
				Title:       title,
				Type:        beadType,
				Agent:       agent,
				Priority:    priority,
				Description: description,
				Parent:      parent,
				Tags:        model.SplitList(tags),
				Files:       model.SplitList(files),
			})
			if err != nil {
				return err
			}
			bead = b
			return nil
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case jsonOut:
			return format.JSON(out, bead)
		case quiet:
			fmt.Fprintln(out, bead.ID)
		default:
			fmt.Fprintf(out, "Created: %s - %s\n", bead.ID, bead.Title)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("type", "t", "", "bead type (task, bug, feature, discovery)")
	addCmd.Flags().StringP("agent", "a", "", "assigned agent")
	addCmd.Flags().StringP("priority", "p", "", "priority (low, medium, high, critical)")
	addCmd.Flags().String("tags", "", "comma-separated tags")
	addCmd.Flags().StringP("description", "d", "", "description")
	addCmd.Flags().StringP("files", "f", "", "comma-separated file paths")
	addCmd.Flags().String("parent", "", "parent bead ID")
	addCmd.Flags().String("body-file", "", "read description from file (- for stdin)")
	rootCmd.AddCommand(addCmd)
}

// readBodyFile reads content from a file path or stdin (when path is "-").
func readBodyFile(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read body file: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
