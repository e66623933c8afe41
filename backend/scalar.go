package backend

import "math/bits"

// BindWordsScalar is the reference XOR kernel: one word per iteration.
func BindWordsScalar(dst, a, b []uint64) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}

// HammingWordsScalar is the reference distance kernel: popcount of XOR,
// one word per iteration.
func HammingWordsScalar(a, b []uint64) int {
	d := 0
	for i := range a {
		d += bits.OnesCount64(a[i] ^ b[i])
	}
	return d
}
