package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathfinder/internal/config"
	"github.com/abhisek/pathfinder/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "pathfinder",
	Short: "Explore education pathways into a career",
	Long:  "Pathfinder is a terminal explorer for the education pathways that lead into a career, from courses and institutions to admissions and entrance exams.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PATHFINDER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides PATHFINDER_CONFIG env var)")
	rootCmd.PersistentFlags().String("career", "", "Career to explore (overrides the configured career)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config, or the default one,
// and applies command line overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if career, _ := cmd.Flags().GetString("career"); career != "" {
		cfg.CareerID = career
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then PATHFINDER_DB env var or the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
