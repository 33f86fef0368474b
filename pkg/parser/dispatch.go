package parser

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/MarkTegna/netwalker/pkg/prefix"
	"github.com/MarkTegna/netwalker/pkg/util"
)

var (
	// IOS-style BGP VRF commands spell the table "vpnv4 vrf <name>".
	vpnv4VRFRe = regexp.MustCompile(`vpnv4\s+vrf\s+["']?([^"'\s]+)["']?`)
	vrfRe      = regexp.MustCompile(`vrf\s+["']?([^"'\s]+)["']?`)
)

// VRFFromCommand parses the VRF name out of a command string, defaulting to
// the global table when the command names none.
func VRFFromCommand(command string) string {
	if m := vpnv4VRFRe.FindStringSubmatch(command); m != nil {
		return m[1]
	}
	if m := vrfRe.FindStringSubmatch(command); m != nil {
		return m[1]
	}
	return prefix.GlobalVRF
}

// ParseOutputs dispatches each captured command output to the matching table
// parser. Commands containing "show ip route" go to the routing-table
// parser, "show ip bgp" to the BGP parser; everything else is ignored.
func ParseOutputs(device, platform string, outputs map[string]string, ts time.Time) []prefix.ParsedPrefix {
	commands := make([]string, 0, len(outputs))
	for command := range outputs {
		commands = append(commands, command)
	}
	sort.Strings(commands)

	var out []prefix.ParsedPrefix
	for _, command := range commands {
		text := outputs[command]
		vrf := VRFFromCommand(command)
		switch {
		case strings.Contains(command, "show ip route"):
			out = append(out, ParseRoutingTable(device, platform, vrf, text, ts)...)
		case strings.Contains(command, "show ip bgp"):
			out = append(out, ParseBGPTable(device, platform, vrf, text, ts)...)
		default:
			util.WithDevice(device).Debugf("skipping output of %q: not a route table", command)
		}
	}
	return out
}
