package prefix

import (
	"fmt"
	"net"
	"strings"

	"github.com/MarkTegna/netwalker/pkg/util"
)

// Normalize canonicalizes a raw prefix string to CIDR notation "a.b.c.d/n"
// with host bits zeroed to the network boundary. Accepted inputs are CIDR
// notation (non-strict: "192.168.1.5/24" becomes "192.168.1.0/24") and
// "<ip> <mask>" where the mask is one of the 33 canonical contiguous
// netmasks. Anything else is an error; in particular a bare IP is never
// guessed a length — ambiguous input must be resolved before normalization.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.Contains(raw, "/"):
		return normalizeCIDR(raw)
	case strings.Contains(raw, " "):
		return normalizeMaskPair(raw)
	default:
		return "", fmt.Errorf("%w: %q", util.ErrAmbiguousPrefix, raw)
	}
}

func normalizeCIDR(raw string) (string, error) {
	if !util.IsValidIPv4CIDR(raw) {
		return "", util.NewPrefixError(raw, "not a valid IPv4 CIDR")
	}
	// Validated above, so ParseCIDR cannot fail; it zeroes host bits into ipnet.
	_, ipnet, _ := net.ParseCIDR(raw)
	return ipnet.String(), nil
}

func normalizeMaskPair(raw string) (string, error) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return "", util.NewPrefixError(raw, "expected exactly two tokens")
	}
	length, ok := MaskLength(fields[1])
	if !ok {
		return "", util.NewPrefixError(raw, "mask is not a canonical netmask")
	}
	if !util.IsValidIPv4(fields[0]) {
		return "", util.NewPrefixError(raw, "invalid IPv4 address")
	}
	return normalizeCIDR(fmt.Sprintf("%s/%d", fields[0], length))
}

// NormalizeParsed canonicalizes a ParsedPrefix into a NormalizedPrefix.
// On failure it returns a single normalization_failed exception instead;
// exactly one of the two return values is meaningful per call.
func NormalizeParsed(p ParsedPrefix) (NormalizedPrefix, *CollectionException) {
	cidr, err := Normalize(p.Prefix)
	if err != nil {
		return NormalizedPrefix{}, &CollectionException{
			Device:    p.Device,
			Type:      ExcNormalizationFailed,
			Token:     p.Prefix,
			Message:   err.Error(),
			Timestamp: p.Timestamp,
		}
	}
	return NormalizedPrefix{
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
	}, nil
}
