package prefix

import (
	"reflect"
	"testing"
)

func TestIsComponentOf(t *testing.T) {
	tests := []struct {
		name      string
		component string
		summary   string
		want      bool
	}{
		{"direct subnet", "192.168.1.0/24", "192.168.0.0/16", true},
		{"deep subnet", "192.168.1.128/25", "192.168.0.0/16", true},
		{"host route in subnet", "10.1.1.1/32", "10.0.0.0/8", true},
		{"anything under default", "203.0.113.0/24", "0.0.0.0/0", true},
		{"upper half of summary", "192.168.1.128/25", "192.168.1.0/24", true},
		{"last host route in summary", "192.168.1.255/32", "192.168.1.0/24", true},
		{"adjacent subnet past boundary", "192.168.2.0/25", "192.168.1.0/24", false},
		{"disjoint ranges", "192.168.1.0/24", "10.0.0.0/8", false},
		{"self is never a component", "192.168.1.0/24", "192.168.1.0/24", false},
		{"equal length siblings", "192.168.1.0/24", "192.168.2.0/24", false},
		{"inverted relationship", "192.168.0.0/16", "192.168.1.0/24", false},
		{"malformed component", "not-a-prefix", "10.0.0.0/8", false},
		{"malformed summary", "10.1.0.0/16", "garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsComponentOf(tt.component, tt.summary); got != tt.want {
				t.Errorf("IsComponentOf(%q, %q) = %v, want %v", tt.component, tt.summary, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	in := []NormalizedPrefix{
		np("R1", "global", "192.168.1.0/24", SourceConnected),
		np("R1", "global", "192.168.0.0/16", SourceBGP),
		np("R1", "global", "192.168.2.0/24", SourceConnected),
	}

	got := Summarize(in)
	want := []SummarizationRelationship{
		{Summary: "192.168.0.0/16", Component: "192.168.1.0/24", Device: "R1", VRF: "global"},
		{Summary: "192.168.0.0/16", Component: "192.168.2.0/24", Device: "R1", VRF: "global"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summarize =\n%+v\nwant\n%+v", got, want)
	}
}

func TestSummarizeMultiLevel(t *testing.T) {
	// A /24 under a /16 under a /8: each containment pair is recorded
	// independently, and the /16 appears as both component and summary.
	in := []NormalizedPrefix{
		np("R1", "global", "10.0.0.0/8", SourceBGP),
		np("R1", "global", "10.1.0.0/16", SourceRIB),
		np("R1", "global", "10.1.1.0/24", SourceConnected),
	}

	got := Summarize(in)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(got), got)
	}

	type pair struct{ summary, component string }
	found := make(map[pair]bool)
	for _, rel := range got {
		found[pair{rel.Summary, rel.Component}] = true
	}
	for _, want := range []pair{
		{"10.0.0.0/8", "10.1.0.0/16"},
		{"10.0.0.0/8", "10.1.1.0/24"},
		{"10.1.0.0/16", "10.1.1.0/24"},
	} {
		if !found[want] {
			t.Errorf("missing relationship %v in %+v", want, got)
		}
	}
}

func TestSummarizeGroupsByDeviceVRF(t *testing.T) {
	// Containment across different devices or VRFs is never related.
	in := []NormalizedPrefix{
		np("R1", "global", "192.168.0.0/16", SourceBGP),
		np("R2", "global", "192.168.1.0/24", SourceConnected),
		np("R1", "cust-a", "192.168.2.0/24", SourceConnected),
	}
	if got := Summarize(in); len(got) != 0 {
		t.Errorf("Summarize = %+v, want no relationships across groups", got)
	}
}

func TestSummarizeEqualLengths(t *testing.T) {
	in := []NormalizedPrefix{
		np("R1", "global", "10.1.0.0/16", SourceRIB),
		np("R1", "global", "10.2.0.0/16", SourceRIB),
	}
	if got := Summarize(in); len(got) != 0 {
		t.Errorf("Summarize = %+v, want none for equal lengths", got)
	}
}

func TestFindComponents(t *testing.T) {
	all := []NormalizedPrefix{
		np("R1", "global", "192.168.1.0/24", SourceConnected),
		np("R2", "cust-a", "192.168.2.0/24", SourceConnected),
		np("R1", "global", "10.0.0.0/8", SourceBGP),
		np("R1", "global", "192.168.0.0/16", SourceBGP),
	}

	got := FindComponents("192.168.0.0/16", all)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	// No device/VRF grouping: the cust-a prefix on R2 qualifies too.
	if got[0].Prefix != "192.168.1.0/24" || got[1].Prefix != "192.168.2.0/24" {
		t.Errorf("FindComponents = %+v", got)
	}
}
