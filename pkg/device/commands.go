package device

import "fmt"

// Platform identifiers as reported by classification.
const (
	PlatformIOS     = "ios"
	PlatformIOSXE   = "ios-xe"
	PlatformNXOS    = "nxos"
	PlatformUnknown = "unknown"
)

// RouteTableCommand returns the routing-table dump command for a VRF.
// The global table takes the bare form on every platform.
func RouteTableCommand(vrf string) string {
	if vrf == "" || vrf == "global" {
		return "show ip route"
	}
	return fmt.Sprintf("show ip route vrf %s", vrf)
}

// BGPTableCommand returns the BGP table dump command for a platform and VRF.
// IOS and IOS-XE address a VRF's BGP table through the vpnv4 address family;
// NX-OS takes the vrf keyword directly.
func BGPTableCommand(platform, vrf string) string {
	if vrf == "" || vrf == "global" {
		return "show ip bgp"
	}
	if platform == PlatformNXOS {
		return fmt.Sprintf("show ip bgp vrf %s", vrf)
	}
	return fmt.Sprintf("show ip bgp vpnv4 vrf %s", vrf)
}

// BGPLookupCommand returns the single-address BGP lookup used to resolve an
// ambiguous prefix. Same platform split as BGPTableCommand.
func BGPLookupCommand(platform, vrf, ip string) string {
	return BGPTableCommand(platform, vrf) + " " + ip
}

// RouteLookupCommand returns the single-address routing-table lookup used as
// the fallback resolution strategy.
func RouteLookupCommand(vrf, ip string) string {
	return RouteTableCommand(vrf) + " " + ip
}

// VRFListCommand returns the VRF enumeration command for a platform.
func VRFListCommand(platform string) string {
	if platform == PlatformNXOS {
		return "show vrf"
	}
	return "show ip vrf"
}

// Inventory and identity commands, identical across supported platforms.
const (
	VersionCommand       = "show version"
	VLANBriefCommand     = "show vlan brief"
	CDPNeighborsCommand  = "show cdp neighbors detail"
	LLDPNeighborsCommand = "show lldp neighbors detail"
	HostnameCommand      = "show running-config | include hostname"
)
