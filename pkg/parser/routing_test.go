package parser

import (
	"testing"
	"time"

	"github.com/MarkTegna/netwalker/pkg/prefix"
)

var ts = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestParseRoutingTable(t *testing.T) {
	output := `Codes: L - local, C - connected, S - static, R - RIP, M - mobile, B - BGP
       D - EIGRP, EX - EIGRP external, O - OSPF, IA - OSPF inter area

Gateway of last resort is 10.1.1.1 to network 0.0.0.0

C    192.168.1.0/24 is directly connected, GigabitEthernet0/0
L    192.168.1.1/32 is directly connected, GigabitEthernet0/0
B    10.0.0.0 255.255.255.0 [20/0] via 10.1.1.1
`

	got := ParseRoutingTable("R1", "ios", prefix.GlobalVRF, output, ts)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(got), got)
	}

	wantProtocols := []string{"C", "L", "B"}
	wantSources := []prefix.Source{prefix.SourceConnected, prefix.SourceConnected, prefix.SourceRIB}
	wantPrefixes := []string{"192.168.1.0/24", "192.168.1.1/32", "10.0.0.0 255.255.255.0"}
	for i, p := range got {
		if p.Protocol != wantProtocols[i] {
			t.Errorf("got[%d].Protocol = %q, want %q", i, p.Protocol, wantProtocols[i])
		}
		if p.Source != wantSources[i] {
			t.Errorf("got[%d].Source = %q, want %q", i, p.Source, wantSources[i])
		}
		if p.Prefix != wantPrefixes[i] {
			t.Errorf("got[%d].Prefix = %q, want %q", i, p.Prefix, wantPrefixes[i])
		}
		if p.Device != "R1" || p.VRF != prefix.GlobalVRF {
			t.Errorf("got[%d] metadata = %+v", i, p)
		}
		if p.Ambiguous {
			t.Errorf("got[%d] ambiguous = true, want false", i)
		}
	}
	if got[0].Interface != "GigabitEthernet0/0" {
		t.Errorf("got[0].Interface = %q, want GigabitEthernet0/0", got[0].Interface)
	}
}

func TestParseRoutingTableProtocols(t *testing.T) {
	tests := []struct {
		name         string
		line         string
		wantProtocol string
		wantSource   prefix.Source
	}{
		{"static", "S    172.16.0.0/16 [1/0] via 10.1.1.1", "S", prefix.SourceRIB},
		{"static default with star", "S*   0.0.0.0/0 [1/0] via 10.1.1.1", "S", prefix.SourceRIB},
		{"ospf", "O    10.2.0.0/16 [110/2] via 10.1.1.2, 00:12:01, GigabitEthernet0/1", "O", prefix.SourceRIB},
		{"ospf external normalizes to parent", "E2   10.3.0.0/16 [110/20] via 10.1.1.2, 00:12:01, GigabitEthernet0/1", "O", prefix.SourceRIB},
		{"ospf inter-area normalizes to parent", "IA   10.4.0.0/16 [110/3] via 10.1.1.2, 00:12:01, GigabitEthernet0/1", "O", prefix.SourceRIB},
		{"eigrp external normalizes to parent", "EX   10.5.0.0/16 [170/3072] via 10.1.1.2, 00:12:01, GigabitEthernet0/1", "D", prefix.SourceRIB},
		{"isis level normalizes to parent", "L1   10.6.0.0/16 [115/20] via 10.1.1.2, 00:12:01, GigabitEthernet0/1", "i", prefix.SourceRIB},
		{"unknown code empty protocol", "X    10.7.0.0/16 via 10.1.1.2", "", prefix.SourceRIB},
		{"local is connected", "L    10.8.0.1/32 is directly connected, Loopback0", "L", prefix.SourceConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRoutingTable("R1", "ios", prefix.GlobalVRF, tt.line, ts)
			if len(got) != 1 {
				t.Fatalf("len = %d, want 1", len(got))
			}
			if got[0].Protocol != tt.wantProtocol {
				t.Errorf("Protocol = %q, want %q", got[0].Protocol, tt.wantProtocol)
			}
			if got[0].Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", got[0].Source, tt.wantSource)
			}
		})
	}
}

func TestParseRoutingTableInterfaces(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantIntf string
		wantVLAN int
	}{
		{
			name:     "directly connected capture",
			line:     "C    10.10.0.0/24 is directly connected, Vlan100",
			wantIntf: "Vlan100",
			wantVLAN: 100,
		},
		{
			name:     "via ip time iface capture",
			line:     "O    10.2.0.0/16 [110/2] via 10.1.1.2, 00:12:01, TenGigabitEthernet1/0/1",
			wantIntf: "TenGigabitEthernet1/0/1",
			wantVLAN: 0,
		},
		{
			name:     "fallback pattern list",
			line:     "S    10.3.0.0/16 [1/0] Port-channel10",
			wantIntf: "Port-channel10",
			wantVLAN: 0,
		},
		{
			name:     "no interface",
			line:     "B    10.4.0.0/16 [20/0] via 10.1.1.1",
			wantIntf: "",
			wantVLAN: 0,
		},
		{
			name:     "vlan id only from Vlan interface",
			line:     "C    10.5.0.0/24 is directly connected, GigabitEthernet0/0.100",
			wantIntf: "GigabitEthernet0/0.100",
			wantVLAN: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRoutingTable("R1", "ios", prefix.GlobalVRF, tt.line, ts)
			if len(got) != 1 {
				t.Fatalf("len = %d, want 1", len(got))
			}
			if got[0].Interface != tt.wantIntf {
				t.Errorf("Interface = %q, want %q", got[0].Interface, tt.wantIntf)
			}
			if got[0].VLAN != tt.wantVLAN {
				t.Errorf("VLAN = %d, want %d", got[0].VLAN, tt.wantVLAN)
			}
		})
	}
}

func TestParseRoutingTableSkipsBanners(t *testing.T) {
	output := `Route Source Table for VRF default
Legend: 10.0.0.0/8 entries below
Gateway of last resort is 10.1.1.1 to network 0.0.0.0
`
	if got := ParseRoutingTable("R1", "ios", prefix.GlobalVRF, output, ts); len(got) != 0 {
		t.Errorf("banner lines produced records: %+v", got)
	}
}
