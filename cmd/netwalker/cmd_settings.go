package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarkTegna/netwalker/pkg/cli"
	"github.com/MarkTegna/netwalker/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.netwalker/settings.json.

Settings provide defaults for flags:
  - config_path: Used when -c is not specified
  - export_dir:  CSV export directory when the config enables no exports
  - store_path:  SQLite store used by 'netwalker export'

Examples:
  netwalker settings show
  netwalker settings set config lab.yaml
  netwalker settings set export-dir /var/lib/netwalker/out
  netwalker settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", settings.DefaultSettingsPath())

		t := cli.NewTable("SETTING", "VALUE")

		printSetting := func(name, value string) {
			if value == "" {
				value = "(not set)"
			}
			t.Row(name, value)
		}

		printSetting("config_path", s.ConfigPath)
		printSetting("export_dir", s.ExportDir)
		printSetting("store_path", s.StorePath)

		t.Flush()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value.

Available settings:
  config     - Default run configuration file (-c flag default)
  export-dir - CSV export directory when the config enables no exports
  store      - SQLite store path for 'netwalker export'

Examples:
  netwalker settings set config lab.yaml
  netwalker settings set store /var/lib/netwalker/runs.db`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting := args[0]
		value := args[1]

		s, err := settings.Load()
		if err != nil {
			s = &settings.Settings{}
		}

		switch setting {
		case "config", "config_path":
			s.ConfigPath = value
			fmt.Printf("Default config set to: %s\n", value)
		case "export-dir", "export_dir":
			s.ExportDir = value
			fmt.Printf("Export directory set to: %s\n", value)
		case "store", "store_path":
			s.StorePath = value
			fmt.Printf("Store path set to: %s\n", value)
		default:
			return fmt.Errorf("unknown setting: %s (valid: config, export-dir, store)", setting)
		}

		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}

		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <setting>",
	Short: "Get a setting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting := args[0]

		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		var value string
		switch setting {
		case "config", "config_path":
			value = s.ConfigPath
		case "export-dir", "export_dir":
			value = s.ExportDir
		case "store", "store_path":
			value = s.StorePath
		default:
			return fmt.Errorf("unknown setting: %s (valid: config, export-dir, store)", setting)
		}

		if value == "" {
			fmt.Println("(not set)")
		} else {
			fmt.Println(value)
		}
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := &settings.Settings{}
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Println("All settings cleared.")
		return nil
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show settings file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(settings.DefaultSettingsPath())
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsClearCmd)
	settingsCmd.AddCommand(settingsPathCmd)
}
