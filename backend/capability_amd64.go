//go:build amd64

package backend

import "golang.org/x/sys/cpu"

// SSE2 is architectural baseline on amd64. AVX2 requires CPUID.7.0:EBX bit 5
// plus OS support for YMM state (OSXSAVE and XCR0), all of which x/sys/cpu
// verifies before setting HasAVX2.
func detectMask() Mask {
	m := FeatureSSE2
	if cpu.X86.HasAVX2 {
		m |= FeatureAVX2
	}
	return m
}
