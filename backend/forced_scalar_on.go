//go:build hyperstream_force_scalar

package backend

// ForceScalar reports whether the forced-scalar build is active.
// Runtime SIMD selection is disabled: Capability returns 0 and the policy
// resolves every operation to the scalar kernel.
const ForceScalar = true

const forceScalar = true
