// Package parser turns captured "show ip route" and "show ip bgp" output
// into ParsedPrefix records with protocol, source, VRF, interface, and VLAN
// metadata attached.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MarkTegna/netwalker/pkg/prefix"
)

// routingSkipMarkers identify routing-table banner lines that carry no route.
var routingSkipMarkers = []string{"Codes:", "Gateway", "Legend:", "Route Source"}

// protocolCodes maps line-start route codes to their protocol letter.
// Sub-codes normalize to the parent protocol (EX is EIGRP external,
// IA/N1/N2/E1/E2 are OSPF variants, su/L1/L2/ia are IS-IS variants).
var protocolCodes = map[string]string{
	"C": "C", "L": "L", "S": "S", "R": "R", "M": "M",
	"B": "B", "D": "D", "O": "O", "i": "i",
	"EX": "D",
	"IA": "O", "N1": "O", "N2": "O", "E1": "O", "E2": "O",
	"su": "i", "L1": "i", "L2": "i", "ia": "i",
}

var (
	directlyConnectedRe = regexp.MustCompile(`directly connected, (\S+)`)
	viaTimeIfaceRe      = regexp.MustCompile(`via \d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}, [^,]+, (\S+)`)
	vlanIfaceRe         = regexp.MustCompile(`^Vlan(\d+)$`)
)

// interfaceRes is the ordered fallback list of interface-name patterns,
// tried most-specific first so "TenGigabitEthernet" is never reported as
// "GigabitEthernet".
var interfaceRes = []*regexp.Regexp{
	regexp.MustCompile(`HundredGigE[\d/.]+`),
	regexp.MustCompile(`TwentyFiveGigE[\d/.]+`),
	regexp.MustCompile(`TenGigabitEthernet[\d/.]+`),
	regexp.MustCompile(`GigabitEthernet[\d/.]+`),
	regexp.MustCompile(`FastEthernet[\d/.]+`),
	regexp.MustCompile(`Ethernet[\d/.]+`),
	regexp.MustCompile(`Port-channel\d+`),
	regexp.MustCompile(`port-channel\d+`),
	regexp.MustCompile(`Vlan\d+`),
	regexp.MustCompile(`Loopback\d+`),
	regexp.MustCompile(`Tunnel\d+`),
	regexp.MustCompile(`Serial[\d/.:]+`),
	regexp.MustCompile(`Null0`),
}

// ParseRoutingTable extracts one ParsedPrefix per route line of "show ip
// route" output. Banner lines are skipped; lines without a recognizable
// prefix token are ignored.
func ParseRoutingTable(device, platform, vrf, output string, ts time.Time) []prefix.ParsedPrefix {
	var out []prefix.ParsedPrefix
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" || containsAny(line, routingSkipMarkers) {
			continue
		}
		raw, ok := prefix.Extract(line)
		if !ok {
			continue
		}

		protocol := extractProtocol(line)
		source := prefix.SourceRIB
		if protocol == "C" || protocol == "L" {
			source = prefix.SourceConnected
		}
		iface := extractInterface(line)

		out = append(out, prefix.ParsedPrefix{
			Device:    device,
			Platform:  platform,
			VRF:       vrf,
			Prefix:    raw.Prefix,
			Source:    source,
			Protocol:  protocol,
			Line:      line,
			Ambiguous: raw.Ambiguous,
			Timestamp: ts,
			VLAN:      extractVLAN(iface),
			Interface: iface,
		})
	}
	return out
}

// extractProtocol matches the line-start token against the fixed code table.
// A trailing "*" (candidate default marker, as in "S*") is stripped before
// the exact match. Unrecognized tokens yield the empty protocol.
func extractProtocol(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	token := strings.TrimSuffix(fields[0], "*")
	if p, ok := protocolCodes[token]; ok {
		return p
	}
	return ""
}

func extractInterface(line string) string {
	if m := directlyConnectedRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if m := viaTimeIfaceRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	for _, re := range interfaceRes {
		if m := re.FindString(line); m != "" {
			return m
		}
	}
	return ""
}

func extractVLAN(iface string) int {
	m := vlanIfaceRe.FindStringSubmatch(iface)
	if m == nil {
		return 0
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return id
}

func containsAny(line string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}
