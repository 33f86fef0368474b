// Package prefix implements the IPv4 prefix normalization and summarization
// engine: extraction of prefix tokens from device CLI output, canonicalization
// to CIDR notation, deduplication across devices and VRFs, and inference of
// summary/component route hierarchies.
package prefix

import "time"

// GlobalVRF is the VRF name used for the default (non-VRF) routing table.
const GlobalVRF = "global"

// Source identifies which device table a prefix was extracted from.
type Source string

const (
	SourceRIB       Source = "rib"
	SourceConnected Source = "connected"
	SourceBGP       Source = "bgp"
)

// RawPrefix is a prefix token pulled from one line of device output,
// before any validation or normalization.
type RawPrefix struct {
	// Prefix is the raw token: "a.b.c.d/n", "a.b.c.d m.m.m.m", or a bare
	// dotted quad when Ambiguous is true.
	Prefix string

	// Line is the full output line the token was extracted from.
	Line string

	// Ambiguous is true when the token carries no explicit prefix length
	// and must be resolved against the live device before normalization.
	Ambiguous bool
}

// ParsedPrefix is one extracted route line with its collection metadata.
type ParsedPrefix struct {
	Device    string
	Platform  string
	VRF       string
	Prefix    string
	Source    Source
	Protocol  string
	Line      string
	Ambiguous bool
	Timestamp time.Time
	VLAN      int // 0 = not a VLAN interface
	Interface string
}

// NormalizedPrefix is a ParsedPrefix whose Prefix field is guaranteed to be
// canonical CIDR notation with host bits zeroed to the network boundary.
type NormalizedPrefix struct {
	Device    string
	Platform  string
	VRF       string
	Prefix    string
	Source    Source
	Protocol  string
	Line      string
	Timestamp time.Time
	VLAN      int
	Interface string
}

// DeduplicatedPrefix aggregates one distinct (VRF, prefix) pair across the
// entire collected corpus.
type DeduplicatedPrefix struct {
	VRF         string
	Prefix      string
	DeviceCount int
	Devices     []string // sorted unique device names
}

// SummarizationRelationship asserts that Component's address range is fully
// contained in Summary's, both observed on the same device and VRF.
type SummarizationRelationship struct {
	Summary   string
	Component string
	Device    string
	VRF       string
}

// ExceptionType classifies a CollectionException.
type ExceptionType string

const (
	ExcAmbiguousPrefix     ExceptionType = "ambiguous_prefix"
	ExcNormalizationFailed ExceptionType = "normalization_failed"
	ExcCommandFailure      ExceptionType = "command_failure"
	ExcParseError          ExceptionType = "parse_error"
	ExcUnresolvedPrefix    ExceptionType = "unresolved_prefix"
)

// CollectionException records one recoverable processing failure. The
// exception log is append-only and never deduplicated; every entry becomes a
// row in the exceptions export.
type CollectionException struct {
	Device    string
	Command   string
	Type      ExceptionType
	Token     string
	Message   string
	Timestamp time.Time
}
