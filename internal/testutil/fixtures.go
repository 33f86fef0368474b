// Package testutil provides canned device CLI output shared across package
// tests. The fixtures are trimmed captures of real IOS/NX-OS command output
// shapes, kept byte-faithful where parsers are sensitive to spacing.
package testutil

// RoutingTableIOS is a mixed-protocol "show ip route" capture.
const RoutingTableIOS = `Codes: L - local, C - connected, S - static, R - RIP, M - mobile, B - BGP
       D - EIGRP, EX - EIGRP external, O - OSPF, IA - OSPF inter area
       N1 - OSPF NSSA external type 1, N2 - OSPF NSSA external type 2
       E1 - OSPF external type 1, E2 - OSPF external type 2

Gateway of last resort is 10.1.1.1 to network 0.0.0.0

S*   0.0.0.0/0 [1/0] via 10.1.1.1
C    192.168.1.0/24 is directly connected, Vlan100
L    192.168.1.1/32 is directly connected, Vlan100
C    10.1.1.0/30 is directly connected, GigabitEthernet0/0
O    10.2.0.0/16 [110/2] via 10.1.1.2, 00:12:01, GigabitEthernet0/1
E2   10.3.0.0/16 [110/20] via 10.1.1.2, 00:12:01, GigabitEthernet0/1
B    172.16.0.0 255.255.0.0 [20/0] via 10.1.1.1
`

// BGPTableIOS is a "show ip bgp" capture with one classful row printed
// without a prefix length.
const BGPTableIOS = `BGP table version is 42, local router ID is 10.255.0.1
Status codes: s suppressed, d damped, h history, * valid, > best, i - internal
Origin codes: i - IGP, e - EGP, ? - incomplete

   Network          Next Hop            Metric LocPrf Weight Path
*> 172.16.0.0/16    10.255.0.2               0             0 65002 i
*> 10.0.0.0    0.0.0.0   0   32768 i
*> 192.168.0.0/16   10.255.0.3               0             0 65003 ?
`

// ShowVersionIOS identifies an IOS switch.
const ShowVersionIOS = `Cisco IOS Software, C3750E Software (C3750E-UNIVERSALK9-M), Version 15.2(4)E10, RELEASE SOFTWARE (fc2)

core-sw1 uptime is 2 years, 11 weeks, 4 days

cisco WS-C3750X-48P (PowerPC405) processor (revision A0) with 262144K bytes of memory.
Processor board ID FDO1617H1A9
`

// ShowVRFIOS lists two customer VRFs in the IOS form.
const ShowVRFIOS = `  Name                             Default RD            Interfaces
  cust-a                           65000:100             Gi0/1
  cust-b                           65000:200             Gi0/3
`

// ShowVLANBrief is a short "show vlan brief" capture.
const ShowVLANBrief = `VLAN Name                             Status    Ports
---- -------------------------------- --------- -------------------------------
1    default                          active    Gi1/0/5, Gi1/0/6
100  users                            active    Gi1/0/1, Gi1/0/2
`

// BGPLookupResolved answers a single-address BGP lookup with an explicit
// prefix length.
const BGPLookupResolved = `BGP routing table entry for 10.0.0.0/8, version 7
Paths: (1 available, best #1, table default)
`
