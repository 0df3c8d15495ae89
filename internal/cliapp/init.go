package cliapp

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new snapfs repository",
	Long:  `Creates the .snapfs directory layout (blobs, references, stage, HEAD) and checks out "main".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepository(false)
		if err != nil {
			return err
		}
		if r.IsInitialized() {
			return fmt.Errorf("already a snapfs repository")
		}
		if err := r.Init(); err != nil {
			return fmt.Errorf("init: %w", err)
		}
		fmt.Println("Initialized empty snapfs repository")
		return nil
	},
}
