//go:build !hyperstream_force_scalar

package backend

// ForceScalar reports whether the forced-scalar build is active.
const ForceScalar = false

const forceScalar = false
