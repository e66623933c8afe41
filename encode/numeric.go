package encode

import "github.com/Amansingh-afk/hyperstream/hv"

// ThermometerEncoder maps a scalar in [min, max] to a prefix of 1-bits laid
// out in low-discrepancy order: x encodes to floor(p*dims) ones where p is
// the clamped position of x in the range.
type ThermometerEncoder struct {
	dims  int
	min   float64
	max   float64
	order []int
}

// NewThermometerEncoder returns an encoder for the given range. A degenerate
// range (max <= min) encodes everything to the zero vector.
func NewThermometerEncoder(dims int, min, max float64) *ThermometerEncoder {
	if dims <= 0 {
		panic("encode: dims must be positive")
	}
	return &ThermometerEncoder{
		dims:  dims,
		min:   min,
		max:   max,
		order: buildVanDerCorputOrder(dims),
	}
}

// Dims returns the vector dimension.
func (e *ThermometerEncoder) Dims() int { return e.dims }

// Encode writes the thermometer code for x into out. Values outside the
// range clamp to the empty or full code.
func (e *ThermometerEncoder) Encode(x float64, out *hv.BinaryHV) {
	out.Clear()
	if !(e.max > e.min) {
		return
	}
	p := (x - e.min) / (e.max - e.min)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	k := int(p * float64(e.dims))
	for i := 0; i < k && i < e.dims; i++ {
		out.SetBit(e.order[i], true)
	}
}

// RandomProjectionEncoder projects a dense float vector onto deterministic
// random bases: each non-zero input value adds its signed weight to every
// bit of the basis vector for its index, and the accumulated sign decides
// the output bit. An empty or all-zero input yields the zero vector.
type RandomProjectionEncoder struct {
	dims int
	im   *ItemMemory
}

// NewRandomProjectionEncoder returns an encoder whose basis vectors derive
// from seed.
func NewRandomProjectionEncoder(dims int, seed uint64) *RandomProjectionEncoder {
	if dims <= 0 {
		panic("encode: dims must be positive")
	}
	return &RandomProjectionEncoder{
		dims: dims,
		im:   NewItemMemory(dims, seed^projectionXor),
	}
}

// Dims returns the vector dimension.
func (e *RandomProjectionEncoder) Dims() int { return e.dims }

// Encode writes the binarized projection of values into out.
func (e *RandomProjectionEncoder) Encode(values []float32, out *hv.BinaryHV) {
	acc := make([]float32, e.dims)
	basis := hv.NewBinary(e.dims)
	for i, v := range values {
		if v == 0 {
			continue
		}
		e.im.EncodeId(uint64(i), basis)
		for bit := 0; bit < e.dims; bit++ {
			if basis.GetBit(bit) {
				acc[bit] += v
			} else {
				acc[bit] -= v
			}
		}
	}
	out.Clear()
	for bit := 0; bit < e.dims; bit++ {
		// Strict > 0 so empty inputs lead to an all-zero output.
		out.SetBit(bit, acc[bit] > 0)
	}
}
