package encode_test

import (
	"testing"

	"github.com/Amansingh-afk/hyperstream/encode"
	"github.com/Amansingh-afk/hyperstream/hv"
)

// Awkward dimensions straddling word boundaries.
var awkwardDims = []int{1, 63, 64, 65, 100, 127, 128, 129}

// tailClean reports whether all bits at positions >= dims are zero.
func tailClean(v *hv.BinaryHV) bool {
	dims := v.Dims()
	if rem := dims % 64; rem != 0 {
		tail := v.Words()[len(v.Words())-1] >> uint(rem)
		return tail == 0
	}
	return true
}

func TestEncoders_TailInvariant_AwkwardDims(t *testing.T) {
	for _, d := range awkwardDims {
		out := hv.NewBinary(d)

		encode.NewItemMemory(d, 1).EncodeId(7, out)
		if !tailClean(out) {
			t.Fatalf("dims=%d: item memory leaked tail bits", d)
		}

		rb := encode.NewRandomBasisEncoder(d, 2)
		rb.Reset()
		rb.Update(1)
		rb.Update(2)
		rb.Update(3)
		rb.Finalize(out)
		if !tailClean(out) {
			t.Fatalf("dims=%d: random basis leaked tail bits", d)
		}

		he := encode.NewHashEncoder(d, encode.HashEncoderConfig{Seed: 3})
		he.Reset()
		he.Update("wake", 1)
		he.Update("move", 2)
		he.Finalize(out)
		if !tailClean(out) {
			t.Fatalf("dims=%d: hash encoder leaked tail bits", d)
		}

		ng := encode.NewSequentialNGramEncoder(d, 2, 4)
		ng.Reset()
		for sym := uint64(1); sym <= 6; sym++ {
			ng.Update(sym)
		}
		ng.Finalize(out)
		if !tailClean(out) {
			t.Fatalf("dims=%d: n-gram encoder leaked tail bits", d)
		}

		encode.NewThermometerEncoder(d, 0, 1).Encode(0.8, out)
		if !tailClean(out) {
			t.Fatalf("dims=%d: thermometer leaked tail bits", d)
		}

		encode.NewRandomProjectionEncoder(d, 5).Encode([]float32{1, -2, 3}, out)
		if !tailClean(out) {
			t.Fatalf("dims=%d: projection leaked tail bits", d)
		}
	}
}

func TestRandomBasis_StepWrapsAtDims(t *testing.T) {
	// With dims updates the step counter returns to zero: update dims+1
	// accumulates unrotated, exactly like the first.
	const d = 64
	e := encode.NewRandomBasisEncoder(d, 9)
	e.Reset()
	for i := 0; i < d; i++ {
		e.Update(uint64(i))
	}
	// The next update's rotation step is (d % d) == 0; nothing to assert
	// directly beyond determinism, so pin it against a replay.
	e.Update(12345)
	got := hv.NewBinary(d)
	e.Finalize(got)

	r := encode.NewRandomBasisEncoder(d, 9)
	r.Reset()
	for i := 0; i < d; i++ {
		r.Update(uint64(i))
	}
	r.Update(12345)
	want := hv.NewBinary(d)
	r.Finalize(want)
	if !got.Equal(want) {
		t.Fatal("step wrap must be deterministic")
	}
}

func TestUnary_PhaseWrapsAtDims(t *testing.T) {
	const d = 8
	e := encode.NewUnaryIntensityEncoder(d, d)
	e.Reset()
	e.Update(d) // phase wraps to 0
	e.Update(d)
	out := hv.NewBinary(d)
	e.Finalize(out)
	// Two full-intensity updates cover every position twice: all ones.
	if out.OnesCount() != d {
		t.Fatalf("want all %d bits set, got %d", d, out.OnesCount())
	}
}
