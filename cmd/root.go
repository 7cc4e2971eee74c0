package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/RamXX/beads/internal/logging"
	"github.com/RamXX/beads/internal/store"
	"github.com/spf13/cobra"
)

var (
	projectDir string
	jsonOut    bool
	verbose    bool
	quiet      bool
	logFile    string

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:           "beads",
	Short:         "Git-backed issue tracking for AI workflows",
	Long:          "beads -- dependency-aware work tracking stored as JSON lines under .beads/.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		closer, err := logging.Setup(logging.Options{
			Verbose: verbose,
			Quiet:   quiet,
			File:    logFile,
		})
		if err != nil {
			return err
		}
		logCloser = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

func Execute() {
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		errorf("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", "", "project directory (default: search upward from the working directory)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a rotated file instead of stderr")
}

func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
}

// startDir is where the upward search for .beads begins.
func startDir() (string, error) {
	if projectDir != "" {
		return projectDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	return dir, nil
}

// openStore finds and opens the nearest store root.
func openStore() (*store.Store, error) {
	dir, err := startDir()
	if err != nil {
		return nil, err
	}
	root, err := store.FindRoot(dir)
	if err != nil {
		return nil, err
	}
	return store.Open(root)
}

func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "beads: "+format+"\n", args...)
}
