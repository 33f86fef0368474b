package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MarkTegna/netwalker/pkg/cli"
)

var discoverJSON bool

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Walk the topology via CDP/LLDP without collecting prefixes",
	Long: `Discover runs only the CDP/LLDP topology walk from the configured
seed devices and prints every device it can reach. Useful for checking
reachability and the domain filter before a full collection run.

Examples:
  netwalker discover -c lab.yaml
  netwalker discover -c lab.yaml --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Discovery.MaxDepth == 0 {
			cfg.Discovery.MaxDepth = 3
		}

		found := newWalker(cfg).Walk(walkSeeds(cfg))

		if discoverJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(found)
		}

		t := cli.NewTable("NAME", "HOST", "DEPTH", "VIA")
		for _, f := range found {
			t.Row(f.Name, f.Host, strconv.Itoa(f.Depth), f.Via)
		}
		t.Flush()
		fmt.Printf("\n%d devices reachable (%d configured seeds)\n", len(found), len(cfg.Devices))
		return nil
	},
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "JSON output")
}
