package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/MarkTegna/netwalker/pkg/cli"
	"github.com/MarkTegna/netwalker/pkg/collect"
	"github.com/MarkTegna/netwalker/pkg/config"
	"github.com/MarkTegna/netwalker/pkg/device"
	"github.com/MarkTegna/netwalker/pkg/discover"
	"github.com/MarkTegna/netwalker/pkg/export"
	"github.com/MarkTegna/netwalker/pkg/util"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect, normalize, and export prefixes from all devices",
	Long: `Collect runs the full pipeline: discover devices (when enabled),
scrape routing/BGP/VLAN tables from each one concurrently, normalize and
deduplicate the prefixes, compute summary/component relationships, and
write the configured exports.

Examples:
  netwalker collect -c lab.yaml
  netwalker collect -c lab.yaml -v`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		devices := cfg.Devices
		if cfg.Discovery.Enabled {
			devices = walkTopology(cfg)
			fmt.Printf("Discovered %d devices (%d seeds)\n", len(devices), len(cfg.Devices))
		}

		cache := openCache(cfg)
		if cache != nil {
			defer cache.Close()
		}

		report := collect.New(cfg, cache).Run(devices)

		if err := exportReport(cfg, report); err != nil {
			return err
		}
		printRunSummary(report)
		return nil
	},
}

// newWalker builds the CDP/LLDP walker from the run configuration. The walk
// always uses the global credentials; per-device overrides only apply to
// configured seeds, which the collector dials itself.
func newWalker(cfg *config.Config) *discover.Walker {
	creds := cfg.Credentials
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &discover.Walker{
		Dial: func(host string) (device.CommandRunner, error) {
			return device.DialSSH(host, creds.Username, creds.Password, timeout)
		},
		MaxDepth:     cfg.Discovery.MaxDepth,
		DomainFilter: cfg.Discovery.DomainFilter,
	}
}

func walkSeeds(cfg *config.Config) []discover.Found {
	seeds := make([]discover.Found, 0, len(cfg.Devices))
	for _, d := range cfg.Devices {
		seeds = append(seeds, discover.Found{Name: d.Name, Host: d.Host})
	}
	return seeds
}

// walkTopology expands the configured seed devices through a CDP/LLDP walk.
// Configured devices keep their entries (and credential overrides); newly
// discovered devices are appended and use the global credentials.
func walkTopology(cfg *config.Config) []config.Device {
	knownHosts := make(map[string]bool)
	for _, d := range cfg.Devices {
		knownHosts[d.Host] = true
	}

	devices := cfg.Devices
	for _, f := range newWalker(cfg).Walk(walkSeeds(cfg)) {
		if knownHosts[f.Host] {
			continue
		}
		knownHosts[f.Host] = true
		devices = append(devices, config.Device{Name: f.Name, Host: f.Host})
	}
	return devices
}

// openCache connects the optional Redis resolution cache. A connection
// failure degrades to uncached resolution, never aborts the run.
func openCache(cfg *config.Config) *collect.Cache {
	if cfg.Cache.Addr == "" {
		return nil
	}
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	cache := collect.NewCache(cfg.Cache.Addr, cfg.Cache.DB, ttl)
	if err := cache.Connect(); err != nil {
		util.Warnf("Resolution cache unavailable, continuing without it: %v", err)
		return nil
	}
	return cache
}

// exportReport writes every export the configuration enables. When none are
// configured, CSV output goes to the settings export directory so a run
// never silently discards its results.
func exportReport(cfg *config.Config, report *collect.Report) error {
	csvDir := cfg.Export.CSVDir
	if csvDir == "" && cfg.Export.SQLitePath == "" && cfg.Export.PDFPath == "" {
		csvDir = userSettings.GetExportDir()
	}

	if csvDir != "" {
		if err := export.WriteCSVDir(csvDir, report); err != nil {
			return fmt.Errorf("writing CSV export: %w", err)
		}
		fmt.Printf("CSV export written to %s/\n", csvDir)
	}
	if cfg.Export.SQLitePath != "" {
		store, err := export.OpenStore(cfg.Export.SQLitePath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		runID, err := store.SaveReport(report)
		if err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		fmt.Printf("Run %d saved to %s\n", runID, cfg.Export.SQLitePath)
	}
	if cfg.Export.PDFPath != "" {
		if err := export.WriteSummaryPDF(cfg.Export.PDFPath, report); err != nil {
			return fmt.Errorf("writing PDF report: %w", err)
		}
		fmt.Printf("PDF report written to %s\n", cfg.Export.PDFPath)
	}
	return nil
}

func printRunSummary(report *collect.Report) {
	fmt.Println()
	t := cli.NewTable("METRIC", "VALUE")
	t.Row("devices", fmt.Sprintf("%d/%d", report.Stats.DevicesSucceeded, report.Stats.DevicesAttempted))
	t.Row("commands run", strconv.Itoa(report.Stats.CommandsRun))
	t.Row("commands failed", strconv.Itoa(report.Stats.CommandsFailed))
	t.Row("prefixes (normalized)", strconv.Itoa(len(report.Normalized)))
	t.Row("prefixes (network-wide)", strconv.Itoa(len(report.Deduplicated)))
	t.Row("summary relationships", strconv.Itoa(len(report.Relationships)))
	t.Row("ambiguous resolved", fmt.Sprintf("%d/%d", report.Stats.AmbiguousResolved, report.Stats.AmbiguousFound))
	t.Row("exceptions", strconv.Itoa(len(report.Exceptions)))
	t.Flush()

	if len(report.Exceptions) > 0 {
		fmt.Println("\n" + cli.Yellow(fmt.Sprintf("%d exceptions recorded; see exceptions.csv", len(report.Exceptions))))
	}
	fmt.Printf("\nElapsed: %s\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
}
