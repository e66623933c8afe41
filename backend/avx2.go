package backend

import "math/bits"

// 256-bit kernels: four 64-bit words per iteration, matching a YMM lane.
// The Hamming variant keeps four independent accumulators so the additions
// do not serialize, then reduces them once at the end; the total equals the
// scalar reference for every input.

// BindWordsAVX2 XORs four words per iteration with a scalar tail.
func BindWordsAVX2(dst, a, b []uint64) {
	n := len(dst)
	limit := n &^ 3
	for i := 0; i < limit; i += 4 {
		dst[i] = a[i] ^ b[i]
		dst[i+1] = a[i+1] ^ b[i+1]
		dst[i+2] = a[i+2] ^ b[i+2]
		dst[i+3] = a[i+3] ^ b[i+3]
	}
	for i := limit; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
}

// HammingWordsAVX2 accumulates popcounts over 256-bit chunks into four
// lanes, with a scalar tail.
func HammingWordsAVX2(a, b []uint64) int {
	n := len(a)
	limit := n &^ 3
	var s0, s1, s2, s3 int
	for i := 0; i < limit; i += 4 {
		s0 += bits.OnesCount64(a[i] ^ b[i])
		s1 += bits.OnesCount64(a[i+1] ^ b[i+1])
		s2 += bits.OnesCount64(a[i+2] ^ b[i+2])
		s3 += bits.OnesCount64(a[i+3] ^ b[i+3])
	}
	d := s0 + s1 + s2 + s3
	for i := limit; i < n; i++ {
		d += bits.OnesCount64(a[i] ^ b[i])
	}
	return d
}
