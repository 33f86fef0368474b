package discover

import (
	"strings"

	"github.com/MarkTegna/netwalker/pkg/device"
	"github.com/MarkTegna/netwalker/pkg/util"
)

// Dialer opens a command runner to a host for the walk.
type Dialer func(host string) (device.CommandRunner, error)

// Found is one device the walk discovered, with the management address the
// collector should connect to.
type Found struct {
	Name  string
	Host  string
	Depth int
	Via   string // "seed", "cdp", or "lldp"
}

// Walker runs a breadth-first CDP/LLDP walk from seed devices. Visited
// devices are keyed by canonical (short, lowercased) name, depth is bounded
// by MaxDepth, and DomainFilter (when set) limits the walk to neighbors
// whose reported id carries that domain suffix. Walk failures on a device
// are logged and that branch is abandoned, never fatal.
type Walker struct {
	Dial         Dialer
	MaxDepth     int
	DomainFilter string
}

// Walk explores the topology and returns every reachable device.
func (w *Walker) Walk(seeds []Found) []Found {
	type queued struct {
		name, host string
		depth      int
		via        string
	}

	visited := make(map[string]bool)
	var queue []queued
	for _, s := range seeds {
		queue = append(queue, queued{name: s.Name, host: s.Host, via: "seed"})
	}

	var found []Found
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		id := ShortName(cur.name)
		if visited[id] {
			continue
		}
		visited[id] = true
		found = append(found, Found{Name: id, Host: cur.host, Depth: cur.depth, Via: cur.via})

		if cur.depth >= w.MaxDepth {
			continue
		}

		for _, n := range w.neighborsOf(cur.host, id) {
			if n.MgmtIP == "" || visited[ShortName(n.Name)] {
				continue
			}
			if !w.domainAllowed(n.Name) {
				util.Debugf("walk: %s filtered by domain", n.Name)
				continue
			}
			queue = append(queue, queued{name: n.Name, host: n.MgmtIP, depth: cur.depth + 1, via: n.Via})
		}
	}
	return found
}

// neighborsOf collects the CDP and LLDP adjacency tables of one device.
// CDP entries win on name collision (they carry platform detail LLDP often
// lacks); LLDP fills in neighbors CDP does not report.
func (w *Walker) neighborsOf(host, name string) []Neighbor {
	runner, err := w.Dial(host)
	if err != nil {
		util.WithDevice(name).Warnf("walk: connect failed: %v", err)
		return nil
	}
	defer runner.Close()

	byName := make(map[string]Neighbor)
	var order []string
	for _, cmd := range []string{device.CDPNeighborsCommand, device.LLDPNeighborsCommand} {
		output, err := runner.SendCommand(cmd)
		if err != nil {
			util.WithCommand(name, cmd).Debugf("walk: %v", err)
			continue
		}
		var parsed []Neighbor
		if cmd == device.CDPNeighborsCommand {
			parsed = ParseCDPNeighbors(output)
		} else {
			parsed = ParseLLDPNeighbors(output)
		}
		for _, n := range parsed {
			key := ShortName(n.Name)
			if _, ok := byName[key]; ok {
				continue
			}
			byName[key] = n
			order = append(order, key)
		}
	}

	neighbors := make([]Neighbor, 0, len(order))
	for _, key := range order {
		neighbors = append(neighbors, byName[key])
	}
	return neighbors
}

func (w *Walker) domainAllowed(name string) bool {
	if w.DomainFilter == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(stripSerial(name)), strings.ToLower(w.DomainFilter))
}
