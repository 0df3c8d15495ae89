package cliapp

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <name>",
	Short: "Switch the active reference",
	Long: `Switches HEAD to the named branch or tag. If neither exists, a new
branch is created at the current latest commit and checked out.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepository(true)
		if err != nil {
			return err
		}
		if err := r.Checkout(args[0]); err != nil {
			return fmt.Errorf("checkout: %w", err)
		}
		fmt.Printf("switched to %q\n", args[0])
		return nil
	},
}
