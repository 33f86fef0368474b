package discover

import (
	"fmt"
	"testing"

	"github.com/MarkTegna/netwalker/pkg/device"
)

// fakeRunner serves canned output per command.
type fakeRunner struct {
	outputs map[string]string
}

func (f *fakeRunner) SendCommand(cmd string) (string, error) {
	out, ok := f.outputs[cmd]
	if !ok {
		return "", fmt.Errorf("%% Invalid input: %q", cmd)
	}
	return out, nil
}

func (f *fakeRunner) Close() error { return nil }

func cdpBlock(name, ip string) string {
	return fmt.Sprintf(`-------------------------
Device ID: %s
Entry address(es):
  IP address: %s
Platform: cisco Test,  Capabilities: Switch
Interface: GigabitEthernet0/1,  Port ID (outgoing port): GigabitEthernet0/2
`, name, ip)
}

func fakeNet(hosts map[string]map[string]string) Dialer {
	return func(host string) (device.CommandRunner, error) {
		out, ok := hosts[host]
		if !ok {
			return nil, fmt.Errorf("dial %s: no route to host", host)
		}
		return &fakeRunner{outputs: out}, nil
	}
}

func TestWalk(t *testing.T) {
	// seed -> sw1 -> sw2, with sw2's neighbor table pointing back at sw1.
	hosts := map[string]map[string]string{
		"10.0.0.1": {device.CDPNeighborsCommand: cdpBlock("sw1.example.com", "10.0.0.2")},
		"10.0.0.2": {device.CDPNeighborsCommand: cdpBlock("sw2.example.com", "10.0.0.3")},
		"10.0.0.3": {device.CDPNeighborsCommand: cdpBlock("sw1.example.com", "10.0.0.2")},
	}

	w := &Walker{Dial: fakeNet(hosts), MaxDepth: 5}
	found := w.Walk([]Found{{Name: "seed", Host: "10.0.0.1"}})

	if len(found) != 3 {
		t.Fatalf("found = %+v, want 3 devices", found)
	}
	wantNames := []string{"seed", "sw1", "sw2"}
	wantDepths := []int{0, 1, 2}
	for i, f := range found {
		if f.Name != wantNames[i] {
			t.Errorf("found[%d].Name = %q, want %q", i, f.Name, wantNames[i])
		}
		if f.Depth != wantDepths[i] {
			t.Errorf("found[%d].Depth = %d, want %d", i, f.Depth, wantDepths[i])
		}
	}
	if found[0].Via != "seed" || found[1].Via != "cdp" {
		t.Errorf("via = %q, %q", found[0].Via, found[1].Via)
	}
}

func TestWalkMaxDepth(t *testing.T) {
	hosts := map[string]map[string]string{
		"10.0.0.1": {device.CDPNeighborsCommand: cdpBlock("sw1.example.com", "10.0.0.2")},
		"10.0.0.2": {device.CDPNeighborsCommand: cdpBlock("sw2.example.com", "10.0.0.3")},
		"10.0.0.3": {device.CDPNeighborsCommand: ""},
	}

	w := &Walker{Dial: fakeNet(hosts), MaxDepth: 1}
	found := w.Walk([]Found{{Name: "seed", Host: "10.0.0.1"}})
	if len(found) != 2 {
		t.Errorf("found = %+v, want seed and sw1 only", found)
	}
}

func TestWalkDomainFilter(t *testing.T) {
	hosts := map[string]map[string]string{
		"10.0.0.1": {device.CDPNeighborsCommand: cdpBlock("sw1.example.com", "10.0.0.2") + cdpBlock("foreign.other.net", "10.9.9.9")},
		"10.0.0.2": {device.CDPNeighborsCommand: ""},
	}

	w := &Walker{Dial: fakeNet(hosts), MaxDepth: 3, DomainFilter: "example.com"}
	found := w.Walk([]Found{{Name: "seed", Host: "10.0.0.1"}})
	for _, f := range found {
		if f.Name == "foreign" {
			t.Errorf("domain filter admitted %+v", f)
		}
	}
	if len(found) != 2 {
		t.Errorf("found = %+v, want seed and sw1", found)
	}
}

func TestWalkUnreachableBranch(t *testing.T) {
	// sw1's management IP does not answer; the walk records it and moves on.
	hosts := map[string]map[string]string{
		"10.0.0.1": {device.CDPNeighborsCommand: cdpBlock("sw1.example.com", "10.0.0.2")},
	}

	w := &Walker{Dial: fakeNet(hosts), MaxDepth: 3}
	found := w.Walk([]Found{{Name: "seed", Host: "10.0.0.1"}})
	if len(found) != 2 {
		t.Errorf("found = %+v, want seed and sw1", found)
	}
}
