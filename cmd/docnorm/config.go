package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"docnorm/internal/project"
)

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Print the effective configuration",
	Long:  `Print the configuration docnorm would use for path (default: current directory) as TOML`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if cfg.Path != "" {
			fmt.Fprintf(out, "# %s\n", cfg.Path)
		} else {
			fmt.Fprintln(out, "# defaults (no docnorm.toml found)")
		}
		return toml.NewEncoder(out).Encode(cfg)
	},
}

// loadConfig resolves --config or the nearest docnorm.toml above the first
// path argument.
func loadConfig(cmd *cobra.Command, args []string) (project.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, err
	}
	startDir := "."
	if len(args) > 0 {
		startDir = args[0]
		if info, statErr := os.Stat(startDir); statErr == nil && !info.IsDir() {
			startDir = filepath.Dir(startDir)
		}
	}
	return project.Resolve(explicit, startDir)
}
