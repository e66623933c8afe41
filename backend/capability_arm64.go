//go:build arm64

package backend

// Advanced SIMD is mandatory in AArch64.
func detectMask() Mask {
	return FeatureNEON
}
