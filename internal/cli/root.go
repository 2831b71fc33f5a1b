// Package cli implements the khayr command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khayr-gifts/khayr/internal/api"
	"github.com/khayr-gifts/khayr/internal/daemon"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "khayr",
	Short: "Khayr Gifts & More storefront engine",
	Long: `Khayr is the storefront engine behind Khayr Gifts & More.
It keeps the product catalog, a persistent shopping cart per session, and
the navigation state machine, and serves rendered view-models to the
presentation shell over a local HTTP API.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml (default ~/.khayr/config.toml)")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the engine version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "khayr %s\n", api.Version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the --config flag or the default path.
func loadConfig() (daemon.Config, error) {
	path := configPath
	if path == "" {
		path = daemon.DefaultConfigPath()
	}
	return daemon.LoadConfig(path)
}

// newEngine wires an engine from the resolved config.
func newEngine() (*daemon.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return daemon.NewEngine(cfg)
}
