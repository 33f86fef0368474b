// Package discover walks the network topology through CDP and LLDP neighbor
// tables, producing the device list the collector then collects from.
package discover

import (
	"regexp"
	"strings"
)

// Neighbor is one adjacency learned from a CDP or LLDP neighbor table.
type Neighbor struct {
	LocalPort  string
	Name       string
	MgmtIP     string
	Platform   string
	RemotePort string
	Via        string // "cdp" or "lldp"
}

var (
	cdpDeviceRe    = regexp.MustCompile(`Device ID:\s*(\S+)`)
	cdpIPRe        = regexp.MustCompile(`IP address:\s*(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`)
	cdpPlatformRe  = regexp.MustCompile(`Platform:\s*([^,]+),`)
	cdpIfaceRe     = regexp.MustCompile(`Interface:\s*([^,]+),\s*Port ID \(outgoing port\):\s*(\S+)`)
	lldpSysNameRe  = regexp.MustCompile(`System Name:\s*(\S+)`)
	lldpMgmtIPRe   = regexp.MustCompile(`Management Addresses?:\s*(?:IP:\s*)?(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`)
	lldpLocalRe    = regexp.MustCompile(`Local (?:Intf|Port id):\s*(\S+)`)
	lldpPortIDRe   = regexp.MustCompile(`Port id:\s*(\S+)`)
	lldpSysDescrRe = regexp.MustCompile(`System Description:\s*\n?\s*([^\n]+)`)
)

// ParseCDPNeighbors parses "show cdp neighbors detail" output. Entries are
// separated by dashed divider lines.
func ParseCDPNeighbors(output string) []Neighbor {
	var neighbors []Neighbor
	for _, block := range splitBlocks(output, "----") {
		m := cdpDeviceRe.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		n := Neighbor{Name: stripSerial(m[1]), Via: "cdp"}
		if m := cdpIPRe.FindStringSubmatch(block); m != nil {
			n.MgmtIP = m[1]
		}
		if m := cdpPlatformRe.FindStringSubmatch(block); m != nil {
			n.Platform = strings.TrimSpace(m[1])
		}
		if m := cdpIfaceRe.FindStringSubmatch(block); m != nil {
			n.LocalPort = strings.TrimSpace(m[1])
			n.RemotePort = m[2]
		}
		neighbors = append(neighbors, n)
	}
	return neighbors
}

// ParseLLDPNeighbors parses "show lldp neighbors detail" output. Entries are
// separated by dashed divider lines.
func ParseLLDPNeighbors(output string) []Neighbor {
	var neighbors []Neighbor
	for _, block := range splitBlocks(output, "----") {
		m := lldpSysNameRe.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		n := Neighbor{Name: stripSerial(m[1]), Via: "lldp"}
		if m := lldpMgmtIPRe.FindStringSubmatch(block); m != nil {
			n.MgmtIP = m[1]
		}
		if m := lldpLocalRe.FindStringSubmatch(block); m != nil {
			n.LocalPort = m[1]
		}
		if m := lldpPortIDRe.FindStringSubmatch(block); m != nil {
			n.RemotePort = m[1]
		}
		if m := lldpSysDescrRe.FindStringSubmatch(block); m != nil {
			n.Platform = strings.TrimSpace(m[1])
		}
		neighbors = append(neighbors, n)
	}
	return neighbors
}

func splitBlocks(output, divider string) []string {
	var blocks []string
	var current []string
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), divider) {
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}
	return blocks
}

// stripSerial drops the chassis serial some platforms append to the device
// id, as in "SW1(FDO1234ABCD)". The domain part of an FQDN is kept so the
// walker's domain filter can see it.
func stripSerial(id string) string {
	if i := strings.Index(id, "("); i > 0 {
		id = id[:i]
	}
	return id
}

// ShortName reduces a device id to its bare hostname: serial and domain
// stripped, lowercased.
func ShortName(id string) string {
	id = stripSerial(id)
	if i := strings.Index(id, "."); i > 0 {
		id = id[:i]
	}
	return strings.ToLower(id)
}
