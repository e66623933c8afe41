//go:build hyperstream_bundler_wide

package hv

// Wide bundler counters: 32-bit signed, no saturation. Opt-in escape hatch
// for workloads that need more than 32k same-sign votes per bit without
// decay or chunking.
type counterT = int32

// BundlerCounterWide reports whether the wide-counter build is active.
const BundlerCounterWide = true

func counterInc(c counterT) counterT { return c + 1 }

func counterDec(c counterT) counterT { return c - 1 }
