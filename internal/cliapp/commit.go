package cliapp

import (
	"fmt"

	"github.com/snapfs-vcs/snapfs/internal/config"
	"github.com/snapfs-vcs/snapfs/internal/tree"
	"github.com/spf13/cobra"
)

var commitMessage string

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Snapshot the current working tree",
	Long:  `Commits the full current working tree, using the reviewed stage only as a record of what was examined, and advances the active reference.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if commitMessage == "" {
			return fmt.Errorf("commit: -m/--message is required")
		}
		r, closeStatCache, err := openRepositoryForScan()
		if err != nil {
			return err
		}
		defer closeStatCache()
		cfg, err := config.Load(snapfsDirFor(r))
		if err != nil {
			return fmt.Errorf("commit: load author: %w", err)
		}
		if cfg.Author.Name == "" && cfg.Author.Email == "" {
			return fmt.Errorf("commit: no author configured, run `snapfs config author.name/author.email` first")
		}

		id, err := r.Commit(tree.Author{
			Name:     cfg.Author.Name,
			Fullname: cfg.Author.Fullname,
			Email:    cfg.Author.Email,
		}, commitMessage)
		if err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		fmt.Printf("committed %s\n", id)
		return nil
	},
}

func init() {
	commitCmd.Flags().StringVarP(&commitMessage, "message", "m", "", "commit message")
}
