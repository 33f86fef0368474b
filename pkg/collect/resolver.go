package collect

import (
	"fmt"
	"strings"

	"github.com/MarkTegna/netwalker/pkg/device"
	"github.com/MarkTegna/netwalker/pkg/prefix"
	"github.com/MarkTegna/netwalker/pkg/util"
)

// Resolver recovers the prefix length of a bare network address by asking
// the live device: first a single-address BGP lookup, then a routing-table
// lookup. Both lookup outputs are mined with the unambiguous extractor only,
// so a resolution can never produce another bare address.
type Resolver struct {
	device   string
	platform string
	runner   device.CommandRunner
	cache    *Cache
}

// NewResolver creates a resolver bound to one device connection. The cache
// may be nil.
func NewResolver(name, platform string, runner device.CommandRunner, cache *Cache) *Resolver {
	return &Resolver{device: name, platform: platform, runner: runner, cache: cache}
}

// Resolve turns an ambiguous ParsedPrefix into a NormalizedPrefix, or
// reports an unresolved_prefix exception when both lookup strategies fail.
// Exactly one of the two return values is meaningful per call.
func (r *Resolver) Resolve(p prefix.ParsedPrefix) (prefix.NormalizedPrefix, *prefix.CollectionException) {
	if cidr, ok := r.cache.Get(r.device, p.VRF, p.Prefix); ok {
		util.WithDeviceVRF(r.device, p.VRF).Debugf("resolved %s from cache: %s", p.Prefix, cidr)
		return withPrefix(p, cidr), nil
	}

	commands := []string{
		device.BGPLookupCommand(r.platform, p.VRF, p.Prefix),
		device.RouteLookupCommand(p.VRF, p.Prefix),
	}
	for _, cmd := range commands {
		output, err := r.runner.SendCommand(cmd)
		if err != nil {
			util.WithCommand(r.device, cmd).Debugf("lookup failed: %v", err)
			continue
		}
		cidr, ok := extractResolved(output)
		if !ok {
			continue
		}
		r.cache.Set(r.device, p.VRF, p.Prefix, cidr)
		util.WithDeviceVRF(r.device, p.VRF).Debugf("resolved %s via %q: %s", p.Prefix, cmd, cidr)
		return withPrefix(p, cidr), nil
	}

	return prefix.NormalizedPrefix{}, &prefix.CollectionException{
		Device:    p.Device,
		Type:      prefix.ExcUnresolvedPrefix,
		Token:     p.Prefix,
		Message:   fmt.Sprintf("%v: both BGP and routing-table lookups failed for %s", util.ErrUnresolvedPrefix, p.Prefix),
		Timestamp: p.Timestamp,
	}
}

// extractResolved scans lookup output for the first unambiguous prefix token
// and normalizes it.
func extractResolved(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		raw, ok := prefix.Extract(line)
		if !ok {
			continue
		}
		cidr, err := prefix.Normalize(raw.Prefix)
		if err != nil {
			continue
		}
		return cidr, true
	}
	return "", false
}

func withPrefix(p prefix.ParsedPrefix, cidr string) prefix.NormalizedPrefix {
	return prefix.NormalizedPrefix{
		Device:    p.Device,
		Platform:  p.Platform,
		VRF:       p.VRF,
		Prefix:    cidr,
		Source:    p.Source,
		Protocol:  p.Protocol,
		Line:      p.Line,
		Timestamp: p.Timestamp,
		VLAN:      p.VLAN,
		Interface: p.Interface,
	}
}
