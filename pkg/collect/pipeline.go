package collect

import (
	"time"

	"github.com/MarkTegna/netwalker/pkg/parser"
	"github.com/MarkTegna/netwalker/pkg/prefix"
	"github.com/MarkTegna/netwalker/pkg/util"
)

// ProcessResult runs the sequential parsing and normalization pipeline on
// one device's collection result. The resolver handles ambiguous prefixes
// and may be nil when no live connection is available, in which case every
// ambiguous prefix becomes an ambiguous_prefix exception and is dropped.
//
// A failed result is never parsed: it yields a single command_failure
// exception carrying the transport error.
func ProcessResult(res Result, resolver *Resolver, ts time.Time) ([]prefix.NormalizedPrefix, []prefix.CollectionException, Stats) {
	var stats Stats
	stats.DevicesAttempted = 1

	if !res.Success {
		exc := prefix.CollectionException{
			Device:    res.Device,
			Type:      prefix.ExcCommandFailure,
			Message:   res.Err,
			Timestamp: ts,
		}
		stats.CountException(exc.Type)
		return nil, []prefix.CollectionException{exc}, stats
	}
	stats.DevicesSucceeded = 1

	parsed := parser.ParseOutputs(res.Device, res.Platform, res.Outputs, ts)
	stats.PrefixesParsed = len(parsed)

	var (
		normalized []prefix.NormalizedPrefix
		exceptions []prefix.CollectionException
	)
	for _, p := range parsed {
		if p.Ambiguous {
			stats.AmbiguousFound++
			if resolver == nil {
				exc := prefix.CollectionException{
					Device:    p.Device,
					Type:      prefix.ExcAmbiguousPrefix,
					Token:     p.Prefix,
					Message:   "bare network address with no resolver available",
					Timestamp: p.Timestamp,
				}
				stats.CountException(exc.Type)
				exceptions = append(exceptions, exc)
				continue
			}
			norm, exc := resolver.Resolve(p)
			if exc != nil {
				stats.CountException(exc.Type)
				exceptions = append(exceptions, *exc)
				continue
			}
			stats.AmbiguousResolved++
			normalized = append(normalized, norm)
			continue
		}

		norm, exc := prefix.NormalizeParsed(p)
		if exc != nil {
			stats.CountException(exc.Type)
			exceptions = append(exceptions, *exc)
			continue
		}
		normalized = append(normalized, norm)
	}
	stats.PrefixesNormal = len(normalized)

	util.WithDevice(res.Device).Debugf("pipeline: %d parsed, %d normalized, %d exceptions",
		len(parsed), len(normalized), len(exceptions))
	return normalized, exceptions, stats
}
