// Command scanscheduler serves the worker claim/ack HTTP API and runs the
// background refresh loop for whichever scan strategy is configured.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rocketmap/scanscheduler/pkg/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "scanscheduler",
	Short: "Geographic scan scheduler",
	Long: `scanscheduler assigns map coverage to scan workers: full-hex sweeps,
spawn-point-filtered sweeps, predicted-spawn targeting, or the combined
band-filling and spawn-retargeting strategy, all behind one claim/ack API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/scanscheduler.yaml", "path to the config file")
	rootCmd.AddCommand(serveCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "scanscheduler: %v\n", err)
		os.Exit(1)
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration file management",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.GenerateDefault(configPath); err != nil {
			return fmt.Errorf("failed to generate config: %w", err)
		}
		fmt.Printf("Config file generated: %s\n", configPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
