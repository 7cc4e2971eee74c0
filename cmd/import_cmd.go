package cmd

import (
	"errors"
	"fmt"

	"github.com/RamXX/beads/internal/format"
	"github.com/RamXX/beads/internal/importer"
	"github.com/RamXX/beads/internal/model"
	"github.com/RamXX/beads/internal/store"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import beads from a markdown task list",
	Long: `Import beads from a markdown task list.

Each "## Task" heading becomes a bead; every "- [ ]" item under it becomes a
child bead. "**Agent**: name" sets the agent of the current task, and
"Files: a, b" at the end of an item records its files. Optional YAML front
matter may set agent, priority and tags for the whole file.

The .beads directory is created when it does not exist yet.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		doc, err := importer.ParseFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if dryRun {
			fmt.Fprintf(out, "Would import %d beads from %s\n", doc.Len(), args[0])
			return nil
		}

		s, err := openOrInitStore()
		if err != nil {
			return err
		}

		var imported []*model.Bead
		err = s.Update(func(c *store.Collection) error {
			beads, err := c.Import(doc)
			if err != nil {
				return err
			}
			imported = beads
			return nil
		})
		if err != nil {
			return err
		}

		if jsonOut {
			return format.JSON(out, imported)
		}
		fmt.Fprintf(out, "Imported %d beads from %s\n", len(imported), args[0])
		return nil
	},
}

// openOrInitStore opens the nearest store, creating one in the start
// directory when none is found.
func openOrInitStore() (*store.Store, error) {
	s, err := openStore()
	if !errors.Is(err, store.ErrNotInitialized) {
		return s, err
	}
	dir, err := startDir()
	if err != nil {
		return nil, err
	}
	root, _, err := store.Init(dir)
	if err != nil {
		return nil, err
	}
	log.Debug("initialized store for import", "root", root)
	return store.Open(root)
}

func init() {
	importCmd.Flags().Bool("dry-run", false, "parse the file and report what would be imported")
	rootCmd.AddCommand(importCmd)
}
