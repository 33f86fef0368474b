package prefix

import (
	"net"
	"sort"

	"github.com/MarkTegna/netwalker/pkg/util"
)

// IsComponentOf reports whether component's address range is fully contained
// within summary's and component is strictly more specific. A prefix is never
// a component of itself, and two prefixes of equal length are never related.
// Malformed CIDR strings are logged and treated as "not a component".
func IsComponentOf(component, summary string) bool {
	_, cNet, err := net.ParseCIDR(component)
	if err != nil {
		util.Debugf("containment test: bad component %q: %v", component, err)
		return false
	}
	_, sNet, err := net.ParseCIDR(summary)
	if err != nil {
		util.Debugf("containment test: bad summary %q: %v", summary, err)
		return false
	}
	cLen, _ := cNet.Mask.Size()
	sLen, _ := sNet.Mask.Size()
	if cLen <= sLen {
		return false
	}
	// Containment: both ends of the component's address range, masked to the
	// summary length, must land on the summary's network address.
	first := util.ComputeNetworkAddr(cNet.IP.String(), sLen)
	last := util.ComputeNetworkAddr(util.ComputeBroadcastAddr(cNet.IP.String(), cLen), sLen)
	return first == sNet.IP.String() && last == sNet.IP.String()
}

// Summarize infers summary/component relationships per (device, vrf) group.
// Within each group prefixes are sorted ascending by length and every pair
// (S, C) with C strictly longer and contained in S emits one relationship.
// A prefix can appear as a component in one relationship and a summary in
// another; multi-level hierarchies record each level independently.
// Quadratic per group, bounded by a single device's route table size.
func Summarize(prefixes []NormalizedPrefix) []SummarizationRelationship {
	type key struct {
		device, vrf string
	}
	groups := make(map[key][]NormalizedPrefix)
	order := make([]key, 0)
	for _, p := range prefixes {
		k := key{p.Device, p.VRF}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], p)
	}

	var out []SummarizationRelationship
	for _, k := range order {
		group := groups[k]
		sort.SliceStable(group, func(i, j int) bool {
			return prefixLen(group[i].Prefix) < prefixLen(group[j].Prefix)
		})
		for i, summary := range group {
			for _, candidate := range group[i+1:] {
				if IsComponentOf(candidate.Prefix, summary.Prefix) {
					out = append(out, SummarizationRelationship{
						Summary:   summary.Prefix,
						Component: candidate.Prefix,
						Device:    k.device,
						VRF:       k.vrf,
					})
				}
			}
		}
	}
	return out
}

// FindComponents returns every prefix in all that is a component of summary,
// ignoring device and VRF grouping. Used for ad hoc hierarchy queries.
func FindComponents(summary string, all []NormalizedPrefix) []NormalizedPrefix {
	var out []NormalizedPrefix
	for _, p := range all {
		if IsComponentOf(p.Prefix, summary) {
			out = append(out, p)
		}
	}
	return out
}

func prefixLen(cidr string) int {
	_, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return 33 // malformed sorts last, containment test rejects it anyway
	}
	length, _ := ipnet.Mask.Size()
	return length
}
