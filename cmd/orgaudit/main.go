package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/org-structure-audit/internal/config"
)

var (
	// Global flags
	verbose    bool
	configFile string

	logger *slog.Logger
	cfg    *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "orgaudit",
	Short: "Audit an organization chart for salary and reporting-line issues",
	Long: `orgaudit reads an employee CSV (Id,firstName,lastName,salary,managerId),
builds the reporting tree under the single employee without a manager and
reports managers paid outside the allowed band, employees with too long a
reporting line and employees that cannot be reached from the CEO.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		var err error
		if configFile != "" {
			cfg, err = config.LoadFile(configFile)
		} else {
			cfg, err = config.FromEnv()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (default: CONFIG_FILE env)")

	reportCmd.Flags().String("lower", "", "Lower salary coefficient (default from config)")
	reportCmd.Flags().String("upper", "", "Upper salary coefficient (default from config)")
	reportCmd.Flags().Int("max-level", 0, "Maximum reporting line depth (default from config)")
	reportCmd.Flags().Bool("strict", false, "Stop on the first malformed record")

	importCmd.Flags().Bool("strict", false, "Stop on the first malformed record")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
