package hv

import (
	"math/bits"

	"github.com/Amansingh-afk/hyperstream/backend"
)

// Bind writes the XOR binding of a and b into out. The operation is its own
// inverse: Bind(Bind(a, b), b) == a. Commutative and associative.
// Dispatches to the best available word kernel for the current CPU.
func Bind(a, b, out *BinaryHV) {
	requireSameDims(a, b, out)
	backend.SelectBind(a.dims, backend.Capability())(out.words, a.words, b.words)
}

// BindScalar is the scalar reference binding, independent of backend selection.
func BindScalar(a, b, out *BinaryHV) {
	requireSameDims(a, b, out)
	backend.BindWordsScalar(out.words, a.words, b.words)
}

// HammingDistance returns the number of differing bits between a and b.
// Symmetric; zero iff a == b. Dispatches to the best available word kernel.
func HammingDistance(a, b *BinaryHV) int {
	requireSameDims(a, b)
	return backend.SelectHamming(a.dims, backend.Capability())(a.words, b.words)
}

// HammingDistanceScalar is the scalar reference distance.
func HammingDistanceScalar(a, b *BinaryHV) int {
	requireSameDims(a, b)
	return backend.HammingWordsScalar(a.words, b.words)
}

// NormalizedSimilarity maps Hamming distance to [-1, 1]: sim = 1 - 2h/D,
// clamped for numerical safety. Exactly 1 iff a == b.
func NormalizedSimilarity(a, b *BinaryHV) float64 {
	h := HammingDistance(a, b)
	sim := 1.0 - 2.0*float64(h)/float64(a.dims)
	if sim > 1.0 {
		sim = 1.0
	}
	if sim < -1.0 {
		sim = -1.0
	}
	return sim
}

// PermuteRotate writes the left-rotation of in by k positions into out. The
// rotation runs over the whole word space (WordCount*64 bits) and then masks
// the tail, so it is a rotation over Dims bits only when Dims is a multiple
// of 64; otherwise bits shifted past Dims are dropped. PermuteRotate(x, 0) ==
// x, and at word-aligned dimensions rotations compose modulo Dims.
// in and out must not alias.
func PermuteRotate(in *BinaryHV, k int, out *BinaryHV) {
	requireSameDims(in, out)
	if k < 0 {
		panic("hv: negative rotation")
	}
	wc := len(in.words)
	rotWords := (k / 64) % wc
	rotBits := uint(k % 64)

	if rotBits == 0 {
		for i := 0; i < wc; i++ {
			out.words[i] = in.words[(i+wc-rotWords)%wc]
		}
	} else {
		for i := 0; i < wc; i++ {
			lo := (i + wc - rotWords) % wc
			hi := (i + wc - rotWords - 1) % wc
			out.words[i] = in.words[lo]<<rotBits | in.words[hi]>>(64-rotBits)
		}
	}
	out.MaskTail()
}

// BundlePairMajority writes the two-input majority of a and b into out.
// For two vectors majority degenerates to OR.
func BundlePairMajority(a, b, out *BinaryHV) {
	requireSameDims(a, b, out)
	for i := range out.words {
		out.words[i] = a.words[i] | b.words[i]
	}
}

func popcount(w uint64) int { return bits.OnesCount64(w) }
