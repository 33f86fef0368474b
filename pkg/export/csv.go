// Package export serializes collection results: CSV files with a fixed
// column contract, a SQLite store for re-export, and a PDF summary report.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MarkTegna/netwalker/pkg/collect"
	"github.com/MarkTegna/netwalker/pkg/prefix"
	"github.com/MarkTegna/netwalker/pkg/util"
)

// timestampFormat is the spreadsheet-tooling compatibility format; all
// timestamps are written in UTC.
const timestampFormat = "2006-01-02 15:04:05"

// prefixColumns is the fixed column contract for prefix rows. Downstream
// spreadsheet tooling depends on this exact order.
var prefixColumns = []string{"device", "platform", "vrf", "prefix", "source", "protocol", "vlan", "interface", "timestamp"}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampFormat)
}

func formatVLAN(vlan int) string {
	if vlan == 0 {
		return ""
	}
	return strconv.Itoa(vlan)
}

// SortNormalized orders prefix rows by (vrf, prefix, device), the exporter
// contract.
func SortNormalized(prefixes []prefix.NormalizedPrefix) {
	sort.SliceStable(prefixes, func(i, j int) bool {
		a, b := prefixes[i], prefixes[j]
		if a.VRF != b.VRF {
			return a.VRF < b.VRF
		}
		if a.Prefix != b.Prefix {
			return a.Prefix < b.Prefix
		}
		return a.Device < b.Device
	})
}

// WritePrefixes writes normalized prefix rows as CSV, sorted by
// (vrf, prefix, device).
func WritePrefixes(w io.Writer, prefixes []prefix.NormalizedPrefix) error {
	sorted := make([]prefix.NormalizedPrefix, len(prefixes))
	copy(sorted, prefixes)
	SortNormalized(sorted)

	cw := csv.NewWriter(w)
	if err := cw.Write(prefixColumns); err != nil {
		return err
	}
	for _, p := range sorted {
		row := []string{
			p.Device, p.Platform, p.VRF, p.Prefix,
			string(p.Source), p.Protocol,
			formatVLAN(p.VLAN), p.Interface,
			formatTime(p.Timestamp),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDeduplicated writes (vrf, prefix) aggregates as CSV, sorted by
// (vrf, prefix). The device list is semicolon-joined.
func WriteDeduplicated(w io.Writer, deduped []prefix.DeduplicatedPrefix) error {
	sorted := make([]prefix.DeduplicatedPrefix, len(deduped))
	copy(sorted, deduped)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].VRF != sorted[j].VRF {
			return sorted[i].VRF < sorted[j].VRF
		}
		return sorted[i].Prefix < sorted[j].Prefix
	})

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"vrf", "prefix", "device_count", "devices"}); err != nil {
		return err
	}
	for _, d := range sorted {
		if err := cw.Write([]string{d.VRF, d.Prefix, strconv.Itoa(d.DeviceCount), strings.Join(d.Devices, ";")}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteExceptions writes the append-only exception log as CSV, in input
// order — the log is never deduplicated or reordered.
func WriteExceptions(w io.Writer, exceptions []prefix.CollectionException) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"device", "command", "error_type", "raw_token", "error_message", "timestamp"}); err != nil {
		return err
	}
	for _, e := range exceptions {
		row := []string{e.Device, e.Command, string(e.Type), e.Token, e.Message, formatTime(e.Timestamp)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaries writes summary/component relationships as CSV.
func WriteSummaries(w io.Writer, rels []prefix.SummarizationRelationship) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"summary_prefix", "component_prefix", "device", "vrf"}); err != nil {
		return err
	}
	for _, r := range rels {
		if err := cw.Write([]string{r.Summary, r.Component, r.Device, r.VRF}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteVLANs writes per-device VLAN inventory as CSV.
func WriteVLANs(w io.Writer, vlans []collect.DeviceVLAN) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"device", "vlan_id", "name", "status"}); err != nil {
		return err
	}
	for _, v := range vlans {
		if err := cw.Write([]string{v.Device, strconv.Itoa(v.VLAN.ID), v.VLAN.Name, v.VLAN.Status}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDevices writes the classified device inventory as CSV.
func WriteDevices(w io.Writer, devices []collect.DeviceInfo) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"device", "host", "hostname", "platform", "model", "serial"}); err != nil {
		return err
	}
	for _, d := range devices {
		if err := cw.Write([]string{d.Name, d.Host, d.Hostname, d.Platform, d.Model, d.Serial}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVDir writes the full CSV set for a report into dir, creating it if
// needed.
func WriteCSVDir(dir string, report *collect.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"prefixes.csv", func(w io.Writer) error { return WritePrefixes(w, report.Normalized) }},
		{"deduplicated.csv", func(w io.Writer) error { return WriteDeduplicated(w, report.Deduplicated) }},
		{"exceptions.csv", func(w io.Writer) error { return WriteExceptions(w, report.Exceptions) }},
		{"summaries.csv", func(w io.Writer) error { return WriteSummaries(w, report.Relationships) }},
		{"vlans.csv", func(w io.Writer) error { return WriteVLANs(w, report.VLANs) }},
		{"devices.csv", func(w io.Writer) error { return WriteDevices(w, report.Devices) }},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		err = f.write(file)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		util.Debugf("wrote %s", path)
	}
	return nil
}
