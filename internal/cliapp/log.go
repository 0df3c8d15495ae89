package cliapp

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logOneline bool

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show commit history",
	Long:  `Walks the commit lineage reachable from the latest commit, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepository(true)
		if err != nil {
			return err
		}
		ids, commits, err := r.Log()
		if err != nil {
			return fmt.Errorf("log: %w", err)
		}
		if len(ids) == 0 {
			fmt.Println("no commits yet")
			return nil
		}
		p := printer(r)
		for i, id := range ids {
			c := commits[i]
			if logOneline {
				fmt.Printf("%s %s\n", p.Dim(string(id)[:12]), c.Message)
				continue
			}
			fmt.Println(p.CommitHeader(fmt.Sprintf("commit %s", id)))
			fmt.Printf("Author: %s <%s>\n", c.Author.Name, c.Author.Email)
			fmt.Printf("\n    %s\n\n", c.Message)
		}
		return nil
	},
}

func init() {
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "show one line per commit")
}
