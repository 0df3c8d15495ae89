package cliapp

import (
	"fmt"

	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "List branches",
	Long:  `Lists every branch in the reference set, marking the active one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepository(true)
		if err != nil {
			return err
		}
		names, err := r.Refs.ListBranches()
		if err != nil {
			return fmt.Errorf("branch: %w", err)
		}
		active, _ := r.Refs.GetReference()
		for _, name := range names {
			if name == active {
				fmt.Printf("* %s\n", name)
				continue
			}
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "List tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepository(true)
		if err != nil {
			return err
		}
		names, err := r.Refs.ListTags()
		if err != nil {
			return fmt.Errorf("tag: %w", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}
