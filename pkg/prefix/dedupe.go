package prefix

import "sort"

// DedupeByDevice collapses duplicate prefix records within the same device.
// The key is (device, vrf, prefix, source); the first occurrence in input
// order wins and survivors keep their input order. Applying it twice yields
// the same result as once.
func DedupeByDevice(prefixes []NormalizedPrefix) []NormalizedPrefix {
	type key struct {
		device, vrf, prefix string
		source              Source
	}
	seen := make(map[key]bool, len(prefixes))
	out := make([]NormalizedPrefix, 0, len(prefixes))
	for _, p := range prefixes {
		k := key{p.Device, p.VRF, p.Prefix, p.Source}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

// DedupeByVRF aggregates prefixes across devices into one DeduplicatedPrefix
// per distinct (vrf, prefix) pair, with the sorted set of contributing
// devices. The result is a set: input order does not affect it. Correct
// device counts require device-deduplicated input — a device listing the
// same prefix under two sources still counts as one device here because the
// device set is keyed by name.
func DedupeByVRF(prefixes []NormalizedPrefix) []DeduplicatedPrefix {
	type key struct {
		vrf, prefix string
	}
	devices := make(map[key]map[string]bool)
	for _, p := range prefixes {
		k := key{p.VRF, p.Prefix}
		if devices[k] == nil {
			devices[k] = make(map[string]bool)
		}
		devices[k][p.Device] = true
	}

	out := make([]DeduplicatedPrefix, 0, len(devices))
	for k, set := range devices {
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		out = append(out, DeduplicatedPrefix{
			VRF:         k.vrf,
			Prefix:      k.prefix,
			DeviceCount: len(names),
			Devices:     names,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VRF != out[j].VRF {
			return out[i].VRF < out[j].VRF
		}
		return out[i].Prefix < out[j].Prefix
	})
	return out
}
