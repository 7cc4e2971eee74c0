package cmd

import (
	"fmt"

	"github.com/RamXX/beads/internal/format"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage store settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		val, err := s.GetConfigValue(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), val)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		if err := s.SetConfigValue(args[0], args[1]); err != nil {
			return err
		}
		if !quiet {
			val, _ := s.GetConfigValue(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], val)
		}
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config values",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		if jsonOut {
			return format.JSON(cmd.OutOrStdout(), s.Config())
		}
		for _, entry := range s.ConfigEntries() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", entry[0], entry[1])
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
