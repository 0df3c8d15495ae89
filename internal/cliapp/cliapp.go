// Package cliapp wires the repository orchestrator (internal/repo) into a
// cobra command tree, grounded on the teacher's cli package root command and
// subcommand structure.
package cliapp

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var showVersion bool

var rootCmd = &cobra.Command{
	Use:   "snapfs",
	Short: "snapfs is a content-addressed snapshot store",
	Long:  `snapfs tracks directory trees as content-addressed snapshots: blobs, trees, and commits linked by hash.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("snapfs version %s\n", version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the root command, exiting the process with status 1 on
// failure the way the teacher's entry point does.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print the snapfs version")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(unstageCmd)
	rootCmd.AddCommand(commitCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(configCmd)
}
