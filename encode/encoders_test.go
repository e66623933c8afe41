package encode_test

import (
	"testing"

	"github.com/Amansingh-afk/hyperstream/encode"
	"github.com/Amansingh-afk/hyperstream/hv"
)

const dims = 256

// ── RandomBasisEncoder ────────────────────────────────────────────────────────

func TestRandomBasis_Deterministic(t *testing.T) {
	run := func() *hv.BinaryHV {
		e := encode.NewRandomBasisEncoder(dims, 42)
		e.Reset()
		for sym := uint64(1); sym <= 10; sym++ {
			e.Update(sym)
		}
		out := hv.NewBinary(dims)
		e.Finalize(out)
		return out
	}
	if !run().Equal(run()) {
		t.Fatal("equal call sequences must produce identical output")
	}
}

func TestRandomBasis_OrderMatters(t *testing.T) {
	enc := func(syms ...uint64) *hv.BinaryHV {
		e := encode.NewRandomBasisEncoder(dims, 42)
		e.Reset()
		for _, s := range syms {
			e.Update(s)
		}
		out := hv.NewBinary(dims)
		e.Finalize(out)
		return out
	}
	if enc(1, 2, 3).Equal(enc(3, 2, 1)) {
		t.Fatal("step rotation must make the encoding order-sensitive")
	}
}

func TestRandomBasis_FirstUpdateUnrotated(t *testing.T) {
	e := encode.NewRandomBasisEncoder(dims, 42)
	e.Reset()
	e.Update(7)
	got := hv.NewBinary(dims)
	e.Finalize(got)

	// A single accumulated vector finalizes to itself: +1 counters where the
	// bit is 1 and -1 elsewhere, no counter at 0, so the single-input
	// majority is exactly the input.
	want := hv.NewBinary(dims)
	encode.GenerateRandomHV(42, 7, want)
	if !got.Equal(want) {
		t.Fatal("first update must accumulate the unrotated symbol vector")
	}
}

func TestRandomBasis_ResetClearsState(t *testing.T) {
	e := encode.NewRandomBasisEncoder(dims, 42)
	e.Reset()
	e.Update(1)
	e.Update(2)
	e.Reset()
	e.Update(7)
	afterReset := hv.NewBinary(dims)
	e.Finalize(afterReset)

	fresh := encode.NewRandomBasisEncoder(dims, 42)
	fresh.Reset()
	fresh.Update(7)
	want := hv.NewBinary(dims)
	fresh.Finalize(want)

	if !afterReset.Equal(want) {
		t.Fatal("Reset must restore the initial state")
	}
	if e.Count() != 1 {
		t.Fatalf("want count 1 after reset+update, got %d", e.Count())
	}
}

// ── HashEncoder ───────────────────────────────────────────────────────────────

func TestHashEncoder_KnownPositions(t *testing.T) {
	// "cat" with the default seed at D=64 probes bits {46, 1, 20, 39}.
	e := encode.NewHashEncoder(64, encode.HashEncoderConfig{})
	out := hv.NewBinary(64)
	e.EncodeToken("cat", 0, out)
	for _, pos := range []int{1, 20, 39, 46} {
		if !out.GetBit(pos) {
			t.Fatalf("bit %d must be set", pos)
		}
	}
	if out.OnesCount() != 4 {
		t.Fatalf("want exactly 4 bits, got %d", out.OnesCount())
	}
}

func TestHashEncoder_AtMostKBits(t *testing.T) {
	e := encode.NewHashEncoder(dims, encode.HashEncoderConfig{NumHashes: 8, Seed: 3})
	out := hv.NewBinary(dims)
	for _, tok := range []string{"wake", "move", "rest", "turn"} {
		e.EncodeToken(tok, 0, out)
		if n := out.OnesCount(); n == 0 || n > 8 {
			t.Fatalf("%q: want 1..8 bits, got %d", tok, n)
		}
	}
}

func TestHashEncoder_RoleRotates(t *testing.T) {
	e := encode.NewHashEncoder(dims, encode.HashEncoderConfig{Seed: 3})
	base := hv.NewBinary(dims)
	role := hv.NewBinary(dims)
	want := hv.NewBinary(dims)
	e.EncodeToken("wake", 0, base)
	e.EncodeToken("wake", 5, role)
	hv.PermuteRotate(base, 5, want)
	if !role.Equal(want) {
		t.Fatal("role must rotate the role-0 code")
	}
}

func TestHashEncoder_StreamDeterminism(t *testing.T) {
	run := func() *hv.BinaryHV {
		e := encode.NewHashEncoder(dims, encode.HashEncoderConfig{Seed: 9})
		e.Reset()
		for i, tok := range []string{"the", "cat", "sat", "on", "the", "mat"} {
			e.Update(tok, i)
		}
		out := hv.NewBinary(dims)
		e.Finalize(out)
		return out
	}
	if !run().Equal(run()) {
		t.Fatal("hash encoding must be deterministic")
	}
}

// ── UnaryIntensityEncoder ─────────────────────────────────────────────────────

func TestUnary_IntensityClamped(t *testing.T) {
	e := encode.NewUnaryIntensityEncoder(dims, 8)
	e.Reset()
	e.Update(100) // clamps to 8
	out := hv.NewBinary(dims)
	e.Finalize(out)
	// One accumulated vector with 8 ones: those 8 counters are +1, the rest
	// -1, so the majority is exactly the 8-bit code.
	if out.OnesCount() != 8 {
		t.Fatalf("want 8 bits after clamped update, got %d", out.OnesCount())
	}
}

func TestUnary_PhaseAdvances(t *testing.T) {
	e := encode.NewUnaryIntensityEncoder(dims, 16)
	e.Reset()
	e.Update(4)
	first := hv.NewBinary(dims)
	e.Finalize(first)

	e.Reset()
	e.Update(4)
	e.Update(4)
	both := hv.NewBinary(dims)
	e.Finalize(both)

	// The second update lands on the next 4 positions of the order, so the
	// two-update majority covers 8 distinct positions.
	if both.OnesCount() != 8 {
		t.Fatalf("want 8 bits from two phase-shifted updates, got %d", both.OnesCount())
	}
	if first.OnesCount() != 4 {
		t.Fatalf("want 4 bits from one update, got %d", first.OnesCount())
	}
}

func TestUnary_ZeroIntensity(t *testing.T) {
	e := encode.NewUnaryIntensityEncoder(dims, 8)
	e.Reset()
	e.Update(0)
	out := hv.NewBinary(dims)
	e.Finalize(out)
	if out.OnesCount() != 0 {
		t.Fatalf("all-negative counters must finalize to zero, got %d ones", out.OnesCount())
	}
}

// ── SequentialNGramEncoder ────────────────────────────────────────────────────

func TestNGram_NoAggregateUntilWindowFilled(t *testing.T) {
	e := encode.NewSequentialNGramEncoder(dims, 3, 42)
	e.Reset()
	e.Update(1)
	e.Update(2)
	e.Update(3) // fills the window; aggregation starts on the next update
	if e.Count() != 0 {
		t.Fatalf("want no aggregates while filling, got %d", e.Count())
	}
	e.Update(4)
	if e.Count() != 1 {
		t.Fatalf("want first aggregate after window filled, got %d", e.Count())
	}
}

func TestNGram_Deterministic(t *testing.T) {
	run := func() *hv.BinaryHV {
		e := encode.NewSequentialNGramEncoder(dims, 3, 42)
		e.Reset()
		for sym := uint64(1); sym <= 12; sym++ {
			e.Update(sym)
		}
		out := hv.NewBinary(dims)
		e.Finalize(out)
		return out
	}
	if !run().Equal(run()) {
		t.Fatal("n-gram encoding must be deterministic")
	}
}

func TestNGram_WindowOne_AggregatesEachSymbol(t *testing.T) {
	e := encode.NewSequentialNGramEncoder(dims, 1, 42)
	e.Reset()
	e.Update(5)
	if e.Count() != 0 {
		t.Fatal("the filling update must not aggregate even at window 1")
	}
	e.Update(6)
	e.Update(7)
	if e.Count() != 2 {
		t.Fatalf("want 2 aggregates, got %d", e.Count())
	}
}

func TestNGram_OrderSensitive(t *testing.T) {
	enc := func(syms ...uint64) *hv.BinaryHV {
		e := encode.NewSequentialNGramEncoder(dims, 2, 42)
		e.Reset()
		for _, s := range syms {
			e.Update(s)
		}
		out := hv.NewBinary(dims)
		e.Finalize(out)
		return out
	}
	if enc(1, 2, 3, 4).Equal(enc(4, 3, 2, 1)) {
		t.Fatal("position rotation must make n-grams order-sensitive")
	}
}

// ── Construction validation ───────────────────────────────────────────────────

func TestEncoders_InvalidConstruction_Panics(t *testing.T) {
	cases := map[string]func(){
		"random basis dims":    func() { encode.NewRandomBasisEncoder(0, 1) },
		"hash dims":            func() { encode.NewHashEncoder(-1, encode.HashEncoderConfig{}) },
		"unary dims":           func() { encode.NewUnaryIntensityEncoder(0, 4) },
		"unary intensity":      func() { encode.NewUnaryIntensityEncoder(64, -1) },
		"ngram window":         func() { encode.NewSequentialNGramEncoder(64, 0, 1) },
		"item memory dims":     func() { encode.NewItemMemory(0, 1) },
		"thermometer dims":     func() { encode.NewThermometerEncoder(0, 0, 1) },
		"projection dims":      func() { encode.NewRandomProjectionEncoder(0, 1) },
		"hash negative hashes": func() { encode.NewHashEncoder(64, encode.HashEncoderConfig{NumHashes: -2}) },
	}
	for name, fn := range cases {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s: expected panic", name)
				}
			}()
			fn()
		}()
	}
}
