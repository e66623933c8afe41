package backend

import "math/bits"

// 128-bit NEON-shaped kernels: two words per iteration with paired
// accumulators, the widening-pairwise-add reduction shape.

// BindWordsNEON XORs two words per iteration with a scalar tail.
func BindWordsNEON(dst, a, b []uint64) {
	n := len(dst)
	limit := n &^ 1
	for i := 0; i < limit; i += 2 {
		dst[i] = a[i] ^ b[i]
		dst[i+1] = a[i+1] ^ b[i+1]
	}
	for i := limit; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
}

// HammingWordsNEON accumulates popcounts pairwise over 128-bit chunks.
func HammingWordsNEON(a, b []uint64) int {
	n := len(a)
	limit := n &^ 1
	var even, odd int
	for i := 0; i < limit; i += 2 {
		even += bits.OnesCount64(a[i] ^ b[i])
		odd += bits.OnesCount64(a[i+1] ^ b[i+1])
	}
	d := even + odd
	for i := limit; i < n; i++ {
		d += bits.OnesCount64(a[i] ^ b[i])
	}
	return d
}
