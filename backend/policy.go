package backend

import (
	"os"
	"strconv"
)

// DefaultHammingThreshold is the dimension at or above which Hamming prefers
// the SSE2 kernel over AVX2 when both are available. The 256-bit reduction
// stops paying for itself once the working set spills past L1 on the host
// class this was measured on.
const DefaultHammingThreshold = 16384

// ThresholdEnvVar overrides the Hamming SSE2-preference threshold at runtime.
// The value must be a positive base-10 integer; anything else falls back to
// DefaultHammingThreshold.
const ThresholdEnvVar = "HYPERSTREAM_HAMMING_SSE2_THRESHOLD"

// HammingThreshold returns the active threshold. The environment variable is
// re-read on every call so tests that set and unset it observe the change.
func HammingThreshold() int {
	if v, ok := parseThresholdEnv(); ok {
		return v
	}
	return DefaultHammingThreshold
}

// ThresholdOverridden reports whether the environment variable is set to a
// valid positive integer.
func ThresholdOverridden() bool {
	_, ok := parseThresholdEnv()
	return ok
}

func parseThresholdEnv() (int, bool) {
	env := os.Getenv(ThresholdEnvVar)
	if env == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(env, 10, 63)
	if err != nil || n == 0 {
		return 0, false
	}
	return int(n), true
}

// Decision is a policy outcome: the chosen kernel and a short rationale.
type Decision struct {
	Kind   Kind
	Reason string
}

// DecideBind selects the bind kernel for a dimension and feature mask.
func DecideBind(dim int, mask Mask) Decision {
	if forceScalar {
		return Decision{Scalar, "forced scalar"}
	}
	switch {
	case mask.Has(FeatureAVX2):
		return Decision{AVX2, "wider vectors (256b)"}
	case mask.Has(FeatureSSE2):
		return Decision{SSE2, "SSE2 available"}
	case mask.Has(FeatureNEON):
		return Decision{NEON, "NEON available"}
	}
	return Decision{Scalar, "no SIMD detected"}
}

// DecideHamming selects the Hamming kernel for a dimension and feature mask.
// With both AVX2 and SSE2 present, dimensions at or above HammingThreshold
// prefer SSE2.
func DecideHamming(dim int, mask Mask) Decision {
	if forceScalar {
		return Decision{Scalar, "forced scalar"}
	}
	switch {
	case mask.Has(FeatureAVX2):
		if dim >= HammingThreshold() && mask.Has(FeatureSSE2) {
			return Decision{SSE2, "preferred for large dims (threshold heuristic)"}
		}
		return Decision{AVX2, "wider vectors (256b)"}
	case mask.Has(FeatureSSE2):
		return Decision{SSE2, "SSE2 available"}
	case mask.Has(FeatureNEON):
		return Decision{NEON, "NEON available"}
	}
	return Decision{Scalar, "no SIMD detected"}
}

// SelectBind returns the bind kernel the policy picks for dim under mask.
func SelectBind(dim int, mask Mask) BindFn {
	return bindKernel(DecideBind(dim, mask).Kind)
}

// SelectHamming returns the Hamming kernel the policy picks for dim under mask.
func SelectHamming(dim int, mask Mask) HammingFn {
	return hammingKernel(DecideHamming(dim, mask).Kind)
}

// Report summarizes the policy decisions for a dimension and feature mask.
// Consumed by diagnostic tools and by tests pinning selection invariants.
type Report struct {
	Dim           int
	Features      Mask
	Bind          Kind
	BindReason    string
	Hamming       Kind
	HammingReason string
}

// Describe reports the backend selections and reasons for dim under mask.
func Describe(dim int, mask Mask) Report {
	b := DecideBind(dim, mask)
	h := DecideHamming(dim, mask)
	return Report{
		Dim:           dim,
		Features:      mask,
		Bind:          b.Kind,
		BindReason:    b.Reason,
		Hamming:       h.Kind,
		HammingReason: h.Reason,
	}
}
