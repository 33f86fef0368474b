package device

import (
	"regexp"
	"strconv"
	"strings"
)

// VLAN is one row of "show vlan brief".
type VLAN struct {
	ID     int
	Name   string
	Status string
}

var (
	// IOS "show ip vrf": "  cust-a    65000:100    Gi0/1".
	// NX-OS "show vrf":  "cust-a    3    Up    --".
	// Shallow indentation only: deeply indented lines are interface
	// continuations of the previous VRF row.
	vrfRowRe  = regexp.MustCompile(`^ {0,3}([A-Za-z0-9._-]+)(?:\s|$)`)
	vlanRowRe = regexp.MustCompile(`^(\d+)\s+(\S+)\s+(\S+)`)
)

// vrfSkipTokens are header words and pseudo-VRFs that never enter the
// per-VRF command plan. The default table is collected as "global".
var vrfSkipTokens = map[string]bool{
	"Name":     true,
	"VRF-Name": true,
	"default":  true,
}

// ParseVRFNames extracts VRF names from "show vrf" or "show ip vrf" output.
// Header rows and the default VRF are dropped; order of appearance is kept.
func ParseVRFNames(output string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "-") {
			continue
		}
		m := vrfRowRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]
		if vrfSkipTokens[name] || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// ParseVLANBrief extracts VLAN rows from "show vlan brief" output.
func ParseVLANBrief(output string) []VLAN {
	var vlans []VLAN
	for _, line := range strings.Split(output, "\n") {
		m := vlanRowRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		vlans = append(vlans, VLAN{ID: id, Name: m[2], Status: m[3]})
	}
	return vlans
}
