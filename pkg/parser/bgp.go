package parser

import (
	"strings"
	"time"

	"github.com/MarkTegna/netwalker/pkg/prefix"
)

// bgpSkipMarkers identify BGP table header and legend lines.
var bgpSkipMarkers = []string{
	"BGP table version",
	"BGP routing table",
	"local router ID",
	"Status codes",
	"Origin codes",
	"RPKI validation codes",
	"Route Distinguisher",
}

// ParseBGPTable extracts one ParsedPrefix per network line of "show ip bgp"
// output. All records carry protocol "B" and source "bgp". Bare network
// addresses (classful rows printed without a length) come back with
// Ambiguous set, exactly as the extractor reported them.
func ParseBGPTable(device, platform, vrf, output string, ts time.Time) []prefix.ParsedPrefix {
	var out []prefix.ParsedPrefix
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" || containsAny(line, bgpSkipMarkers) {
			continue
		}
		raw, ok := prefix.ExtractBGP(line)
		if !ok {
			continue
		}
		out = append(out, prefix.ParsedPrefix{
			Device:    device,
			Platform:  platform,
			VRF:       vrf,
			Prefix:    raw.Prefix,
			Source:    prefix.SourceBGP,
			Protocol:  "B",
			Line:      line,
			Ambiguous: raw.Ambiguous,
			Timestamp: ts,
		})
	}
	return out
}
