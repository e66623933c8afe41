package backend

import "math/bits"

// 128-bit kernels: two 64-bit words per iteration, matching an XMM lane.

// BindWordsSSE2 XORs two words per iteration with a scalar tail.
func BindWordsSSE2(dst, a, b []uint64) {
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

// HammingWordsSSE2 accumulates popcounts over 128-bit chunks, reducing each
// chunk to a scalar total before summing, with a scalar tail.
func HammingWordsSSE2(a, b []uint64) int {
	n := len(a)
	limit := n &^ 1
	d := 0
	for i := 0; i < limit; i += 2 {
		lo := a[i] ^ b[i]
		hi := a[i+1] ^ b[i+1]
		d += bits.OnesCount64(lo) + bits.OnesCount64(hi)
	}
	for i := limit; i < n; i++ {
		d += bits.OnesCount64(a[i] ^ b[i])
	}
	return d
}
