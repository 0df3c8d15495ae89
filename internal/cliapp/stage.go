package cliapp

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stageCmd = &cobra.Command{
	Use:     "stage [patterns...]",
	Aliases: []string{"add"},
	Short:   "Select pending differences into the stage",
	Long: `Partitions the current status by the given glob patterns and persists
the result as the stage. With no patterns, every difference is staged.
Patterns apply in order: a difference whose path matches a pattern is left
out of the stage, and a pattern prefixed with ^ takes matches back in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, closeStatCache, err := openRepositoryForScan()
		if err != nil {
			return err
		}
		defer closeStatCache()
		s, err := r.Stage(args)
		if err != nil {
			return fmt.Errorf("stage: %w", err)
		}
		fmt.Printf("staged %d added, %d updated, %d removed\n", len(s.Added), len(s.Updated), len(s.Removed))
		return nil
	},
}

var unstageCmd = &cobra.Command{
	Use:   "unstage",
	Short: "Clear the stage",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepository(true)
		if err != nil {
			return err
		}
		if err := r.Unstage(); err != nil {
			return fmt.Errorf("unstage: %w", err)
		}
		fmt.Println("stage cleared")
		return nil
	},
}
