package collect

import (
	"sync"
	"time"

	"github.com/MarkTegna/netwalker/pkg/config"
	"github.com/MarkTegna/netwalker/pkg/device"
	"github.com/MarkTegna/netwalker/pkg/prefix"
	"github.com/MarkTegna/netwalker/pkg/util"
)

// Dialer opens a command runner to a device. Swapped out in tests.
type Dialer func(host, user, pass string, timeout time.Duration) (device.CommandRunner, error)

// Collector runs the full collection: one worker per device up to the
// configured concurrency, each owning its connection exclusively, followed
// by single-threaded global deduplication and summarization.
type Collector struct {
	cfg   *config.Config
	cache *Cache
	dial  Dialer
}

// Report is everything one collection run produced, in the shapes the
// exporters consume.
type Report struct {
	StartedAt     time.Time
	FinishedAt    time.Time
	Devices       []DeviceInfo
	Results       []Result
	Normalized    []prefix.NormalizedPrefix
	Deduplicated  []prefix.DeduplicatedPrefix
	Relationships []prefix.SummarizationRelationship
	Exceptions    []prefix.CollectionException
	VLANs         []DeviceVLAN
	Stats         Stats
}

// New creates a Collector. The cache may be nil.
func New(cfg *config.Config, cache *Cache) *Collector {
	return &Collector{cfg: cfg, cache: cache, dial: dialSSH}
}

func dialSSH(host, user, pass string, timeout time.Duration) (device.CommandRunner, error) {
	return device.DialSSH(host, user, pass, timeout)
}

// deviceReport is one worker's complete output, handed back by value; the
// final aggregation after the pool joins is the only cross-device
// synchronization point.
type deviceReport struct {
	info       DeviceInfo
	result     Result
	normalized []prefix.NormalizedPrefix
	exceptions []prefix.CollectionException
	vlans      []DeviceVLAN
	stats      Stats
}

// Run collects from every configured device and aggregates the results.
func (c *Collector) Run(devices []config.Device) *Report {
	report := &Report{StartedAt: time.Now().UTC()}

	reports := make([]deviceReport, len(devices))
	var wg sync.WaitGroup
	sem := make(chan struct{}, c.cfg.Concurrency)
	for i, d := range devices {
		wg.Add(1)
		go func(i int, d config.Device) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			reports[i] = c.collectDevice(d)
		}(i, d)
	}
	wg.Wait()

	for _, dr := range reports {
		report.Devices = append(report.Devices, dr.info)
		report.Results = append(report.Results, dr.result)
		report.Normalized = append(report.Normalized, dr.normalized...)
		report.Exceptions = append(report.Exceptions, dr.exceptions...)
		report.VLANs = append(report.VLANs, dr.vlans...)
		report.Stats.Merge(dr.stats)
	}

	report.Normalized = prefix.DedupeByDevice(report.Normalized)
	report.Deduplicated = prefix.DedupeByVRF(report.Normalized)
	report.Relationships = prefix.Summarize(report.Normalized)
	report.FinishedAt = time.Now().UTC()

	util.Infof("collected %d/%d devices, %d prefixes, %d exceptions",
		report.Stats.DevicesSucceeded, report.Stats.DevicesAttempted,
		len(report.Normalized), len(report.Exceptions))
	return report
}

// collectDevice owns one connection for the duration of one device's
// collection: classify, enumerate VRFs, run the command plan, then parse,
// resolve, and normalize the captured output.
func (c *Collector) collectDevice(d config.Device) deviceReport {
	ts := time.Now().UTC()
	dr := deviceReport{
		info:   DeviceInfo{Name: d.Name, Host: d.Host},
		result: Result{Device: d.Name},
	}
	log := util.WithDevice(d.Name)

	creds := c.cfg.CredentialsFor(d)
	runner, err := c.dial(d.Host, creds.Username, creds.Password, time.Duration(c.cfg.TimeoutSeconds)*time.Second)
	if err != nil {
		log.Warnf("connect failed: %v", err)
		dr.result.Err = err.Error()
		dr.normalized, dr.exceptions, dr.stats = ProcessResult(dr.result, nil, ts)
		return dr
	}
	defer runner.Close()

	// Identity first: the platform selects command forms for everything else.
	versionOut, err := runner.SendCommand(device.VersionCommand)
	if err != nil {
		log.Warnf("version probe failed: %v", err)
		dr.result.Err = err.Error()
		dr.normalized, dr.exceptions, dr.stats = ProcessResult(dr.result, nil, ts)
		return dr
	}
	id := device.Classify(versionOut)
	if id.Hostname == "" {
		// Version output had no uptime or prompt line; fall back to the
		// running-config hostname statement.
		if out, err := runner.SendCommand(device.HostnameCommand); err == nil {
			if h, ok := device.ClassifyHostname(out); ok {
				id.Hostname = h
			}
		}
	}
	dr.info.Hostname = id.Hostname
	dr.info.Platform = id.Platform
	dr.info.Model = id.Model
	dr.info.Serial = id.Serial
	dr.result.Platform = id.Platform
	dr.result.Success = true
	dr.result.Outputs = make(map[string]string)

	vrfs := c.enumerateVRFs(runner, id.Platform, &dr)
	dr.result.VRFs = vrfs

	for _, cmd := range c.commandPlan(id.Platform, vrfs) {
		dr.stats.CommandsRun++
		output, err := runner.SendCommand(cmd)
		if err != nil {
			dr.stats.CommandsFailed++
			exc := prefix.CollectionException{
				Device:    d.Name,
				Command:   cmd,
				Type:      prefix.ExcCommandFailure,
				Message:   err.Error(),
				Timestamp: ts,
			}
			dr.stats.CountException(exc.Type)
			dr.exceptions = append(dr.exceptions, exc)
			continue
		}
		dr.result.Outputs[cmd] = output
	}

	if vlanOut, ok := dr.result.Outputs[device.VLANBriefCommand]; ok {
		for _, v := range device.ParseVLANBrief(vlanOut) {
			dr.vlans = append(dr.vlans, DeviceVLAN{Device: d.Name, VLAN: v})
		}
	}

	resolver := NewResolver(d.Name, id.Platform, runner, c.cache)
	normalized, exceptions, pipeStats := ProcessResult(dr.result, resolver, ts)
	dr.normalized = normalized
	dr.exceptions = append(dr.exceptions, exceptions...)
	dr.stats.Merge(pipeStats)
	return dr
}

func (c *Collector) enumerateVRFs(runner device.CommandRunner, platform string, dr *deviceReport) []string {
	if !c.cfg.Collection.PerVRF {
		return nil
	}
	output, err := runner.SendCommand(device.VRFListCommand(platform))
	if err != nil {
		util.WithDevice(dr.result.Device).Debugf("VRF enumeration failed: %v", err)
		return nil
	}
	return device.ParseVRFNames(output)
}

// commandPlan builds the ordered command list for one device: the global
// routing table, per-VRF routing tables, BGP tables when enabled, and the
// VLAN inventory.
func (c *Collector) commandPlan(platform string, vrfs []string) []string {
	plan := []string{device.RouteTableCommand(prefix.GlobalVRF)}
	for _, vrf := range vrfs {
		plan = append(plan, device.RouteTableCommand(vrf))
	}
	if c.cfg.Collection.BGP {
		plan = append(plan, device.BGPTableCommand(platform, prefix.GlobalVRF))
		for _, vrf := range vrfs {
			plan = append(plan, device.BGPTableCommand(platform, vrf))
		}
	}
	plan = append(plan, device.VLANBriefCommand)
	return plan
}

// Analyze re-runs the global stages on an existing normalized set, used by
// re-export from the relational store.
func Analyze(normalized []prefix.NormalizedPrefix) ([]prefix.DeduplicatedPrefix, []prefix.SummarizationRelationship) {
	deduped := prefix.DedupeByDevice(normalized)
	return prefix.DedupeByVRF(deduped), prefix.Summarize(deduped)
}
