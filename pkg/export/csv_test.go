package export

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"
	"time"

	"github.com/MarkTegna/netwalker/pkg/collect"
	"github.com/MarkTegna/netwalker/pkg/prefix"
)

var ts = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestWritePrefixesColumnContract(t *testing.T) {
	prefixes := []prefix.NormalizedPrefix{
		{
			Device: "R1", Platform: "ios", VRF: "global",
			Prefix: "192.168.1.0/24", Source: prefix.SourceConnected,
			Protocol: "C", VLAN: 100, Interface: "Vlan100", Timestamp: ts,
		},
	}

	var buf bytes.Buffer
	if err := WritePrefixes(&buf, prefixes); err != nil {
		t.Fatalf("WritePrefixes error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	wantHeader := []string{"device", "platform", "vrf", "prefix", "source", "protocol", "vlan", "interface", "timestamp"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}
	wantRow := []string{"R1", "ios", "global", "192.168.1.0/24", "connected", "C", "100", "Vlan100", "2026-03-14 09:26:53"}
	if !reflect.DeepEqual(rows[1], wantRow) {
		t.Errorf("row = %v, want %v", rows[1], wantRow)
	}
}

func TestWritePrefixesSorted(t *testing.T) {
	prefixes := []prefix.NormalizedPrefix{
		{Device: "R2", VRF: "global", Prefix: "10.0.0.0/24", Source: prefix.SourceRIB, Timestamp: ts},
		{Device: "R1", VRF: "global", Prefix: "10.0.0.0/24", Source: prefix.SourceRIB, Timestamp: ts},
		{Device: "R1", VRF: "cust-a", Prefix: "10.0.0.0/24", Source: prefix.SourceRIB, Timestamp: ts},
		{Device: "R1", VRF: "global", Prefix: "10.0.0.0/16", Source: prefix.SourceRIB, Timestamp: ts},
	}

	var buf bytes.Buffer
	if err := WritePrefixes(&buf, prefixes); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// (vrf, prefix, device): cust-a first, then global /16, then global /24
	// by device.
	type key struct{ vrf, pfx, dev string }
	want := []key{
		{"cust-a", "10.0.0.0/24", "R1"},
		{"global", "10.0.0.0/16", "R1"},
		{"global", "10.0.0.0/24", "R1"},
		{"global", "10.0.0.0/24", "R2"},
	}
	for i, w := range want {
		row := rows[i+1]
		if row[2] != w.vrf || row[3] != w.pfx || row[0] != w.dev {
			t.Errorf("row %d = %v, want %+v", i, row, w)
		}
	}

	// Input slice order is untouched.
	if prefixes[0].Device != "R2" {
		t.Error("WritePrefixes reordered the caller's slice")
	}
}

func TestWritePrefixesZeroVLANEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WritePrefixes(&buf, []prefix.NormalizedPrefix{
		{Device: "R1", VRF: "global", Prefix: "10.0.0.0/8", Source: prefix.SourceRIB, Timestamp: ts},
	})
	if err != nil {
		t.Fatal(err)
	}
	rows, _ := csv.NewReader(&buf).ReadAll()
	if rows[1][6] != "" {
		t.Errorf("vlan column = %q, want empty for VLAN 0", rows[1][6])
	}
}

func TestWriteDeduplicated(t *testing.T) {
	deduped := []prefix.DeduplicatedPrefix{
		{VRF: "global", Prefix: "10.0.0.0/24", DeviceCount: 2, Devices: []string{"R1", "R2"}},
		{VRF: "cust-a", Prefix: "10.0.0.0/24", DeviceCount: 1, Devices: []string{"R3"}},
	}

	var buf bytes.Buffer
	if err := WriteDeduplicated(&buf, deduped); err != nil {
		t.Fatal(err)
	}
	rows, _ := csv.NewReader(&buf).ReadAll()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[1][0] != "cust-a" {
		t.Errorf("rows not sorted by vrf: %v", rows)
	}
	if rows[2][2] != "2" || rows[2][3] != "R1;R2" {
		t.Errorf("aggregate row = %v", rows[2])
	}
}

func TestWriteExceptionsKeepsOrder(t *testing.T) {
	exceptions := []prefix.CollectionException{
		{Device: "R2", Type: prefix.ExcUnresolvedPrefix, Token: "10.0.0.0", Timestamp: ts},
		{Device: "R1", Type: prefix.ExcNormalizationFailed, Token: "bad/99", Message: "invalid CIDR", Timestamp: ts},
		{Device: "R1", Type: prefix.ExcNormalizationFailed, Token: "bad/99", Message: "invalid CIDR", Timestamp: ts},
	}

	var buf bytes.Buffer
	if err := WriteExceptions(&buf, exceptions); err != nil {
		t.Fatal(err)
	}
	rows, _ := csv.NewReader(&buf).ReadAll()
	// Append-only log: three entries, duplicates intact, input order.
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	if rows[1][0] != "R2" || rows[1][2] != "unresolved_prefix" {
		t.Errorf("first exception row = %v", rows[1])
	}
	if !reflect.DeepEqual(rows[2], rows[3]) {
		t.Errorf("duplicate exceptions differ: %v / %v", rows[2], rows[3])
	}
}

func TestWriteSummaries(t *testing.T) {
	rels := []prefix.SummarizationRelationship{
		{Summary: "192.168.0.0/16", Component: "192.168.1.0/24", Device: "R1", VRF: "global"},
	}

	var buf bytes.Buffer
	if err := WriteSummaries(&buf, rels); err != nil {
		t.Fatal(err)
	}
	rows, _ := csv.NewReader(&buf).ReadAll()
	want := []string{"192.168.0.0/16", "192.168.1.0/24", "R1", "global"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("row = %v, want %v", rows[1], want)
	}
}

func TestWriteDevices(t *testing.T) {
	devices := []collect.DeviceInfo{
		{Name: "R1", Host: "10.0.0.1", Hostname: "core-sw1", Platform: "ios", Model: "WS-C3750X-48P", Serial: "FDO1617H1A9"},
	}

	var buf bytes.Buffer
	if err := WriteDevices(&buf, devices); err != nil {
		t.Fatal(err)
	}
	rows, _ := csv.NewReader(&buf).ReadAll()
	wantHeader := []string{"device", "host", "hostname", "platform", "model", "serial"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}
	want := []string{"R1", "10.0.0.1", "core-sw1", "ios", "WS-C3750X-48P", "FDO1617H1A9"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("row = %v, want %v", rows[1], want)
	}
}
