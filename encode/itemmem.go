package encode

import "github.com/Amansingh-afk/hyperstream/hv"

// ItemMemory deterministically maps 64-bit ids and string tokens to binary
// hypervectors. Stateless beyond the construction seed; safe for concurrent
// reads.
type ItemMemory struct {
	dims int
	seed uint64
}

// NewItemMemory returns an item memory for vectors of the given dimension.
func NewItemMemory(dims int, seed uint64) *ItemMemory {
	if dims <= 0 {
		panic("encode: dims must be positive")
	}
	return &ItemMemory{dims: dims, seed: seed}
}

// Dims returns the vector dimension.
func (m *ItemMemory) Dims() int { return m.dims }

// EncodeId writes the deterministic vector for id into out.
func (m *ItemMemory) EncodeId(id uint64, out *hv.BinaryHV) {
	GenerateRandomHV(m.seed, id, out)
}

// EncodeToken hashes token to a symbol with the salted seed and encodes it.
func (m *ItemMemory) EncodeToken(token string, out *hv.BinaryHV) {
	sym := FNV1a64(token, m.seed^tokenSalt)
	m.EncodeId(sym, out)
}

// SymbolEncoder wraps ItemMemory with optional role-based rotation, so a
// token can carry its position: role r maps a token vector v to rotate(v, r).
type SymbolEncoder struct {
	im *ItemMemory
}

// NewSymbolEncoder returns a symbol encoder over a fresh item memory.
func NewSymbolEncoder(dims int, seed uint64) *SymbolEncoder {
	return &SymbolEncoder{im: NewItemMemory(dims, seed)}
}

// EncodeToken writes the vector for token into out.
func (e *SymbolEncoder) EncodeToken(token string, out *hv.BinaryHV) {
	e.im.EncodeToken(token, out)
}

// EncodeId writes the vector for id into out.
func (e *SymbolEncoder) EncodeId(id uint64, out *hv.BinaryHV) {
	e.im.EncodeId(id, out)
}

// EncodeTokenRole writes the vector for token rotated by role steps.
func (e *SymbolEncoder) EncodeTokenRole(token string, role int, out *hv.BinaryHV) {
	if role == 0 {
		e.im.EncodeToken(token, out)
		return
	}
	base := hv.NewBinary(e.im.dims)
	e.im.EncodeToken(token, base)
	hv.PermuteRotate(base, role, out)
}
