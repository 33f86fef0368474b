// Netwalker - IPv4 Prefix Collection & Summarization Tool
//
// A CLI tool for walking a network of Cisco IOS/IOS-XE/NX-OS devices over
// SSH and building a normalized prefix inventory:
//   - CDP/LLDP topology discovery from seed devices
//   - Routing table, BGP table, and VLAN inventory scraping (global and per VRF)
//   - Prefix normalization to canonical CIDR, with classful BGP rows
//     resolved by live lookups
//   - Network-wide deduplication and summary/component analysis
//   - CSV, SQLite, and PDF export
//
// Typical usage:
//
//	netwalker collect -c lab.yaml                 # Full collection run
//	netwalker discover -c lab.yaml                # Topology walk only
//	netwalker export --csv-dir out/               # Re-export the last stored run
//	netwalker settings set config lab.yaml        # Persist a default config path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MarkTegna/netwalker/pkg/config"
	"github.com/MarkTegna/netwalker/pkg/settings"
	"github.com/MarkTegna/netwalker/pkg/util"
	"github.com/MarkTegna/netwalker/pkg/version"
)

var (
	// Global option flags
	configPath string
	verbose    bool

	// Global state
	userSettings *settings.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "netwalker",
	Short:             "IPv4 prefix collection and summarization tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Netwalker walks a network of Cisco devices over SSH, scrapes their
routing and BGP tables, and produces a normalized, deduplicated prefix
inventory with summary/component analysis.

  netwalker collect -c <config.yaml>`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for certain commands
		if isSettingsOrHelp(cmd) {
			return nil
		}

		// Load user settings
		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		// Apply defaults from settings
		if configPath == "" {
			configPath = userSettings.ConfigPath
		}

		// Set log level: quiet by default, verbose on -v
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Run configuration file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("netwalker dev build (use 'make build' for version info)")
		} else {
			fmt.Printf("netwalker %s (%s)\n", version.Version, version.GitCommit)
		}
	},
}

// loadConfig loads the run configuration from the -c flag or the persisted
// default, and prompts for the SSH password when the file omits it.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config required: use -c <config.yaml> or 'netwalker settings set config <path>'")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.PromptPassword(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isSettingsOrHelp checks whether cmd (or any ancestor) is a settings, help,
// or version command.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings":
			return true
		}
	}
	return false
}
