// Package encode implements deterministic hypervector encoders: item memory,
// symbol encoding, streaming random-basis / hash / unary-intensity / n-gram
// encoders, and numeric thermometer / random-projection codes.
//
// All encoders are pure functions of their construction parameters and call
// sequence; the same configuration and inputs produce bit-identical output on
// every platform and backend. Seeds are explicit and non-cryptographic.
package encode

import "github.com/Amansingh-afk/hyperstream/hv"

// SplitMix64 constants.
const (
	goldenGamma   = 0x9e3779b97f4a7c15
	splitMixMul1  = 0xbf58476d1ce4e5b9
	splitMixMul2  = 0x94d049bb133111eb
	fnvOffset64   = 1469598103934665603
	fnvPrime64    = 1099511628211
	tokenSalt     = 0x5bf03635f0b7a54d
	projectionXor = 0xa5a5a5a5a5a5a5a5
)

// Default seeds for the streaming encoders.
const (
	DefaultRandomBasisSeed     = 0x9e3779b97f4a7c15
	DefaultSequentialNGramSeed = 0x27d4eb2f165667c5
	DefaultHashEncoderSeed     = 0x51ed2701f3a5c7b9
)

// DefaultNumHashes is the default bit count per token in HashEncoder.
const DefaultNumHashes = 4

// splitMix64Step advances state by the golden gamma and returns the mixed
// output word.
func splitMix64Step(state *uint64) uint64 {
	*state += goldenGamma
	z := *state
	z = (z ^ (z >> 30)) * splitMixMul1
	z = (z ^ (z >> 27)) * splitMixMul2
	return z ^ (z >> 31)
}

// mixSymbol folds a symbol into a seed to form the SplitMix64 start state.
func mixSymbol(seed, symbol uint64) uint64 {
	state := seed + symbol*splitMixMul2
	state ^= symbol<<32 | symbol>>32
	state *= splitMixMul1
	return state
}

// GenerateRandomHV fills out with the deterministic pseudorandom vector for
// (seed, symbol): SplitMix64 words seeded by mixSymbol, tail masked.
func GenerateRandomHV(seed, symbol uint64, out *hv.BinaryHV) {
	state := mixSymbol(seed, symbol)
	words := out.Words()
	for i := range words {
		words[i] = splitMix64Step(&state)
	}
	out.MaskTail()
}

// FNV1a64 hashes token with the seed folded into the offset basis.
func FNV1a64(token string, seed uint64) uint64 {
	h := uint64(fnvOffset64) ^ seed
	for i := 0; i < len(token); i++ {
		h ^= uint64(token[i])
		h *= fnvPrime64
	}
	return h
}

// DoubleHash derives the (start, step) pair for open-addressed bit
// selection. The step is forced odd so successive probes cover the space.
func DoubleHash(token string, seed uint64) (h1, h2 uint64) {
	h1 = FNV1a64(token, seed)
	h2 = FNV1a64(token, seed^tokenSalt)
	h2 = h2<<1 | 1
	return h1, h2
}

// buildVanDerCorputOrder returns a low-discrepancy permutation of [0, dims):
// each index is bit-reversed over enough bits to cover 2*dims, reduced mod
// dims, then de-duplicated by assigning the smallest unused index.
func buildVanDerCorputOrder(dims int) []int {
	order := make([]int, dims)
	for i := 0; i < dims; i++ {
		rev := 0
		rem := i
		for b := 0; 1<<uint(b) <= dims*2; b++ {
			rev = rev<<1 | rem&1
			rem >>= 1
		}
		order[i] = rev % dims
	}
	used := make([]bool, dims)
	for i := 0; i < dims; i++ {
		idx := order[i]
		if idx >= dims || used[idx] {
			idx = 0
			for used[idx] {
				idx++
			}
			order[i] = idx
		}
		used[order[i]] = true
	}
	return order
}
