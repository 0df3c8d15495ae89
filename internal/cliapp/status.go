package cliapp

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pending differences between the working tree and the latest commit",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, closeStatCache, err := openRepositoryForScan()
		if err != nil {
			return err
		}
		defer closeStatCache()
		differences, err := r.Status()
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		if len(differences) == 0 {
			fmt.Println("nothing to report, working tree matches the latest commit")
			return nil
		}
		p := printer(r)
		for _, d := range differences {
			fmt.Println(p.Difference(d))
		}
		return nil
	},
}
