package prefix

import (
	"net"
	"regexp"
	"strings"

	"github.com/MarkTegna/netwalker/pkg/util"
)

var (
	cidrRe = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}/\d{1,2}`)
	// Single-space separator: ip+mask notation prints the pair adjacent
	// ("10.0.0.0 255.255.255.0"), while column-aligned BGP tables pad a
	// network address and its next hop with runs of spaces.
	maskRe = regexp.MustCompile(`(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}) (\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`)
	bareRe = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

	// Route-status marker (*, >) immediately preceding the network address,
	// as printed in the first column of a BGP table.
	statusRe = regexp.MustCompile(`^\s*[*>]+\s*\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)
)

// bgpLineKeywords mark a line as a BGP-table row for the bare-IP heuristic.
var bgpLineKeywords = []string{"network", "bgp", "next hop", "metric", "locprf", "weight", "path"}

// canonicalMasks maps the 33 contiguous dotted-quad netmasks
// (255.255.255.255 down to 0.0.0.0) to their prefix lengths.
var canonicalMasks map[string]int

func init() {
	canonicalMasks = make(map[string]int, 33)
	for length := 0; length <= 32; length++ {
		canonicalMasks[net.IP(net.CIDRMask(length, 32)).String()] = length
	}
}

// MaskLength returns the prefix length for a canonical dotted-quad netmask.
// Non-contiguous or malformed masks return ok=false.
func MaskLength(mask string) (int, bool) {
	length, ok := canonicalMasks[mask]
	return length, ok
}

// Extract pulls at most one prefix token from a routing-table line.
// CIDR notation is checked before ip+mask notation; first match wins.
// Bare IPs are never extracted from routing-table lines.
func Extract(line string) (RawPrefix, bool) {
	if m := cidrRe.FindString(line); m != "" {
		return RawPrefix{Prefix: m, Line: line}, true
	}
	if m := maskRe.FindStringSubmatch(line); m != nil {
		// The second quad must be a canonical contiguous netmask;
		// two arbitrary addresses on one line are not a prefix.
		if _, ok := canonicalMasks[m[2]]; ok && util.IsValidIPv4(m[1]) {
			return RawPrefix{Prefix: m[1] + " " + m[2], Line: line}, true
		}
	}
	return RawPrefix{}, false
}

// ExtractBGP pulls at most one prefix token from a BGP-table line. It tries
// the explicit-length notations first, then falls back to the bare-IP
// heuristic: BGP tables print network addresses without a length when the
// prefix is classful. Bare matches are flagged Ambiguous and must be resolved
// against the live device before normalization.
func ExtractBGP(line string) (RawPrefix, bool) {
	if raw, ok := Extract(line); ok {
		return raw, true
	}
	ip := bareRe.FindString(line)
	if ip == "" || !util.IsValidIPv4(ip) {
		return RawPrefix{}, false
	}
	if !looksLikeNetworkAddr(ip, line) {
		return RawPrefix{}, false
	}
	return RawPrefix{Prefix: ip, Line: line, Ambiguous: true}, true
}

// looksLikeNetworkAddr classifies a bare dotted quad as a network address
// rather than a next hop or counter. It pattern-matches vendor CLI
// conventions: a status marker in the first column, or BGP table column
// keywords anywhere on the line.
func looksLikeNetworkAddr(ip, line string) bool {
	lower := strings.ToLower(line)
	if ip == "0.0.0.0" || ip == "255.255.255.255" {
		if !strings.Contains(lower, "default") && !strings.Contains(lower, "route") && !containsAny(lower, bgpLineKeywords) {
			return false
		}
	}
	if statusRe.MatchString(line) {
		return true
	}
	return containsAny(lower, bgpLineKeywords)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
