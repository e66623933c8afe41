package encode_test

import (
	"testing"

	"github.com/Amansingh-afk/hyperstream/encode"
	"github.com/Amansingh-afk/hyperstream/hv"
	"github.com/Amansingh-afk/hyperstream/stream"
)

// ── Canonical output ──────────────────────────────────────────────────────────

// ItemMemory(256, 0x123456789abcdef0).EncodeId(42) is pinned word-for-word:
// any platform or backend must reproduce these exact values.
func TestItemMemory_CanonicalWords(t *testing.T) {
	want := []uint64{
		0xe885b13f18f4a9cd,
		0xaa98155cade2d0ae,
		0xab6ffc95c840265b,
		0x131b25b95dcb7385,
	}
	im := encode.NewItemMemory(256, 0x123456789abcdef0)
	out := hv.NewBinary(256)
	im.EncodeId(42, out)
	for i, w := range out.Words() {
		if w != want[i] {
			t.Fatalf("word %d: got %#x, want %#x", i, w, want[i])
		}
	}
	if got := stream.HashWords(out.Words()); got != 0x0239b764d93914bc {
		t.Fatalf("canonical word hash: got %#x, want 0x0239b764d93914bc", got)
	}
}

// ── Determinism and distribution ──────────────────────────────────────────────

func TestItemMemory_Deterministic(t *testing.T) {
	im := encode.NewItemMemory(512, 7)
	a := hv.NewBinary(512)
	b := hv.NewBinary(512)
	im.EncodeId(99, a)
	im.EncodeId(99, b)
	if !a.Equal(b) {
		t.Fatal("EncodeId must be deterministic")
	}
}

func TestItemMemory_DistinctIds_Differ(t *testing.T) {
	im := encode.NewItemMemory(512, 7)
	a := hv.NewBinary(512)
	b := hv.NewBinary(512)
	im.EncodeId(1, a)
	im.EncodeId(2, b)
	if a.Equal(b) {
		t.Fatal("distinct ids must not collide")
	}
	// Random vectors should sit near half distance.
	d := hv.HammingDistance(a, b)
	if d < 512/4 || d > 3*512/4 {
		t.Fatalf("distance %d far from dims/2", d)
	}
}

func TestItemMemory_SeedSeparation(t *testing.T) {
	a := hv.NewBinary(256)
	b := hv.NewBinary(256)
	encode.NewItemMemory(256, 1).EncodeId(5, a)
	encode.NewItemMemory(256, 2).EncodeId(5, b)
	if a.Equal(b) {
		t.Fatal("different seeds must produce different vectors")
	}
}

func TestItemMemory_TailMasked(t *testing.T) {
	im := encode.NewItemMemory(100, 3)
	out := hv.NewBinary(100)
	im.EncodeId(1, out)
	if got := out.Words()[1] >> 36; got != 0 {
		t.Fatalf("tail bits must be zero, got %#x", got)
	}
}

func TestItemMemory_EncodeToken_MatchesSaltedId(t *testing.T) {
	const seed = 0xabc
	im := encode.NewItemMemory(256, seed)
	byToken := hv.NewBinary(256)
	byId := hv.NewBinary(256)
	im.EncodeToken("wake", byToken)
	im.EncodeId(encode.FNV1a64("wake", seed^0x5bf03635f0b7a54d), byId)
	if !byToken.Equal(byId) {
		t.Fatal("EncodeToken must encode the salted FNV symbol")
	}
}

// ── FNV-1a and double hashing ─────────────────────────────────────────────────

func TestFNV1a64_KnownValues(t *testing.T) {
	cases := []struct {
		token string
		seed  uint64
		want  uint64
	}{
		{"", 0, 0x14650fb0739d0383}, // plain offset basis (zero seed, no bytes)
		{"a", 0, 0x44bd8ad473cd9906},
		{"hyper", 7, 0x91da5621631938c6},
	}
	for _, c := range cases {
		if got := encode.FNV1a64(c.token, c.seed); got != c.want {
			t.Fatalf("FNV1a64(%q, %d) = %#x, want %#x", c.token, c.seed, got, c.want)
		}
	}
}

func TestDoubleHash_StepIsOdd(t *testing.T) {
	for _, tok := range []string{"", "a", "wake", "move", "the quick brown fox"} {
		_, h2 := encode.DoubleHash(tok, 0x51ed2701f3a5c7b9)
		if h2&1 == 0 {
			t.Fatalf("%q: step must be odd, got %#x", tok, h2)
		}
	}
}

// ── Symbol encoder ────────────────────────────────────────────────────────────

func TestSymbolEncoder_RoleZero_MatchesItemMemory(t *testing.T) {
	se := encode.NewSymbolEncoder(256, 11)
	im := encode.NewItemMemory(256, 11)
	a := hv.NewBinary(256)
	b := hv.NewBinary(256)
	se.EncodeTokenRole("rest", 0, a)
	im.EncodeToken("rest", b)
	if !a.Equal(b) {
		t.Fatal("role 0 must match the raw item memory encoding")
	}
}

func TestSymbolEncoder_Role_Rotates(t *testing.T) {
	se := encode.NewSymbolEncoder(256, 11)
	base := hv.NewBinary(256)
	role3 := hv.NewBinary(256)
	want := hv.NewBinary(256)
	se.EncodeTokenRole("rest", 0, base)
	se.EncodeTokenRole("rest", 3, role3)
	hv.PermuteRotate(base, 3, want)
	if !role3.Equal(want) {
		t.Fatal("role r must equal rotation by r of the base encoding")
	}
}
