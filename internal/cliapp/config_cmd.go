package cliapp

import (
	"fmt"

	"github.com/snapfs-vcs/snapfs/internal/config"
	"github.com/spf13/cobra"
)

var configGlobal bool

var configCmd = &cobra.Command{
	Use:   "config <key> <value>",
	Short: "Set configuration options",
	Long: `Sets author.name, author.fullname, author.email, or color.ui.

Examples:
  snapfs config author.name "Ada Lovelace"
  snapfs config author.email ada@example.com
  snapfs config --global color.ui false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if configGlobal {
			cfg, err := config.LoadGlobal()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if err := setConfigValue(&cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := config.SaveGlobal(cfg); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return nil
		}

		r, err := openRepository(true)
		if err != nil {
			return err
		}
		snapfsDir := snapfsDirFor(r)
		cfg, err := config.Load(snapfsDir)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if err := setConfigValue(&cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := config.SaveRepo(snapfsDir, cfg); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		return nil
	},
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "author.name":
		cfg.Author.Name = value
	case "author.fullname":
		cfg.Author.Fullname = value
	case "author.email":
		cfg.Author.Email = value
	case "color.ui":
		cfg.Color.UI = value == "true"
	default:
		return fmt.Errorf("config: unknown key %q", key)
	}
	return nil
}

func init() {
	configCmd.Flags().BoolVar(&configGlobal, "global", false, "write to ~/.snapfsconfig instead of the repository config")
}
