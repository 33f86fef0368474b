package prefix

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		want      string
		wantFound bool
	}{
		{
			name:      "cidr from connected route",
			line:      "C    192.168.1.0/24 is directly connected, GigabitEthernet0/0",
			want:      "192.168.1.0/24",
			wantFound: true,
		},
		{
			name:      "cidr host route",
			line:      "L    192.168.1.1/32 is directly connected, GigabitEthernet0/0",
			want:      "192.168.1.1/32",
			wantFound: true,
		},
		{
			name:      "ip mask pair",
			line:      "B    10.0.0.0 255.255.255.0 [20/0] via 10.1.1.1",
			want:      "10.0.0.0 255.255.255.0",
			wantFound: true,
		},
		{
			name:      "cidr wins over mask pair",
			line:      "S    10.0.0.0/8 255.0.0.0",
			want:      "10.0.0.0/8",
			wantFound: true,
		},
		{
			name:      "non-canonical mask rejected",
			line:      "B    10.0.0.0 255.0.255.0 [20/0] via 10.1.1.1",
			wantFound: false,
		},
		{
			name:      "two addresses are not a prefix",
			line:      "O    10.0.0.1 10.0.0.2",
			wantFound: false,
		},
		{
			name:      "bare ip never matches routing lines",
			line:      "S    10.0.0.0 via 10.1.1.1",
			wantFound: false,
		},
		{
			name:      "no address",
			line:      "Gateway of last resort is not set",
			wantFound: false,
		},
		{
			name:      "empty line",
			line:      "",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, found := Extract(tt.line)
			if found != tt.wantFound {
				t.Fatalf("Extract(%q) found = %v, want %v", tt.line, found, tt.wantFound)
			}
			if !found {
				return
			}
			if raw.Prefix != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.line, raw.Prefix, tt.want)
			}
			if raw.Ambiguous {
				t.Errorf("Extract(%q) ambiguous = true, want false", tt.line)
			}
			if raw.Line != tt.line {
				t.Errorf("Extract(%q) line = %q, want original line", tt.line, raw.Line)
			}
		})
	}
}

func TestExtractBGP(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		want          string
		wantFound     bool
		wantAmbiguous bool
	}{
		{
			name:      "explicit cidr not ambiguous",
			line:      "*> 10.1.0.0/16       10.255.0.1               0 65001 i",
			want:      "10.1.0.0/16",
			wantFound: true,
		},
		{
			name:          "classful network without length",
			line:          "*> 10.0.0.0    0.0.0.0   0   32768 i",
			want:          "10.0.0.0",
			wantFound:     true,
			wantAmbiguous: true,
		},
		{
			name:          "status marker without space",
			line:          "*>10.20.0.0         192.0.2.1                0    100      0 i",
			want:          "10.20.0.0",
			wantFound:     true,
			wantAmbiguous: true,
		},
		{
			name:      "zero address rejected without keywords",
			line:      "*> 0.0.0.0",
			wantFound: false,
		},
		{
			name:          "default route keyword admits zero address",
			line:          "*> 0.0.0.0 default route candidate",
			want:          "0.0.0.0",
			wantFound:     true,
			wantAmbiguous: true,
		},
		{
			name:      "bare ip without marker or keywords",
			line:      "    172.16.0.0",
			wantFound: false,
		},
		{
			name:          "keyword line without marker",
			line:          "   Network          Next Hop  172.16.0.0",
			want:          "172.16.0.0",
			wantFound:     true,
			wantAmbiguous: true,
		},
		{
			name:      "invalid octets rejected",
			line:      "*> 300.1.1.1",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, found := ExtractBGP(tt.line)
			if found != tt.wantFound {
				t.Fatalf("ExtractBGP(%q) found = %v, want %v", tt.line, found, tt.wantFound)
			}
			if !found {
				return
			}
			if raw.Prefix != tt.want {
				t.Errorf("ExtractBGP(%q) = %q, want %q", tt.line, raw.Prefix, tt.want)
			}
			if raw.Ambiguous != tt.wantAmbiguous {
				t.Errorf("ExtractBGP(%q) ambiguous = %v, want %v", tt.line, raw.Ambiguous, tt.wantAmbiguous)
			}
		})
	}
}

func TestMaskLength(t *testing.T) {
	// All 33 canonical masks must round-trip through the table.
	wantMasks := map[string]int{
		"255.255.255.255": 32,
		"255.255.255.0":   24,
		"255.255.0.0":     16,
		"255.0.0.0":       8,
		"128.0.0.0":       1,
		"0.0.0.0":         0,
	}
	for mask, want := range wantMasks {
		got, ok := MaskLength(mask)
		if !ok || got != want {
			t.Errorf("MaskLength(%q) = %d, %v, want %d, true", mask, got, ok, want)
		}
	}

	if len(canonicalMasks) != 33 {
		t.Fatalf("canonical mask table has %d entries, want 33", len(canonicalMasks))
	}

	for _, bad := range []string{"255.0.255.0", "255.255.255.254.0", "1.2.3.4", "not-a-mask"} {
		if _, ok := MaskLength(bad); ok {
			t.Errorf("MaskLength(%q) accepted a non-canonical mask", bad)
		}
	}
}
