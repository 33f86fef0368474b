// Package collect orchestrates device collection: it drives connections
// through the worker pool, feeds captured output to the parsers, resolves
// ambiguous prefixes against the live device, and aggregates the per-device
// records into the flat collections the exporters consume.
package collect

import (
	"github.com/MarkTegna/netwalker/pkg/device"
	"github.com/MarkTegna/netwalker/pkg/prefix"
)

// Result is one device's raw collection outcome, the boundary record between
// the transport layer and the parsing core. Only Outputs entries whose
// command contains "show ip route" or "show ip bgp" are ever parsed.
type Result struct {
	Device   string
	Platform string
	Success  bool
	VRFs     []string
	Outputs  map[string]string
	Err      string
}

// DeviceInfo is the classified identity of one collected device. Hostname is
// the name the device reports about itself, which can differ from the
// configured Name.
type DeviceInfo struct {
	Name     string
	Host     string
	Hostname string
	Platform string
	Model    string
	Serial   string
}

// DeviceVLAN is one VLAN observed on one device.
type DeviceVLAN struct {
	Device string
	VLAN   device.VLAN
}

// Stats is an explicit accumulator of collection counters. Each worker
// builds its own and the orchestrator folds them after the pool joins, so
// no counter state is ever shared across workers.
type Stats struct {
	DevicesAttempted  int
	DevicesSucceeded  int
	CommandsRun       int
	CommandsFailed    int
	PrefixesParsed    int
	PrefixesNormal    int
	AmbiguousFound    int
	AmbiguousResolved int
	Exceptions        map[prefix.ExceptionType]int
}

// CountException records one exception by type.
func (s *Stats) CountException(t prefix.ExceptionType) {
	if s.Exceptions == nil {
		s.Exceptions = make(map[prefix.ExceptionType]int)
	}
	s.Exceptions[t]++
}

// Merge folds other into s.
func (s *Stats) Merge(other Stats) {
	s.DevicesAttempted += other.DevicesAttempted
	s.DevicesSucceeded += other.DevicesSucceeded
	s.CommandsRun += other.CommandsRun
	s.CommandsFailed += other.CommandsFailed
	s.PrefixesParsed += other.PrefixesParsed
	s.PrefixesNormal += other.PrefixesNormal
	s.AmbiguousFound += other.AmbiguousFound
	s.AmbiguousResolved += other.AmbiguousResolved
	for t, n := range other.Exceptions {
		if s.Exceptions == nil {
			s.Exceptions = make(map[prefix.ExceptionType]int)
		}
		s.Exceptions[t] += n
	}
}
