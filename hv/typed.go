package hv

import "math"

// Element is the set of value types a TypedHV can carry. Complex elements
// use conjugated inner products in Cosine.
type Element interface {
	float32 | float64 | complex64 | complex128
}

// TypedHV is a fixed-dimension hypervector of arithmetic or complex values,
// used for cosine similarity and additive bundling. Unlike BinaryHV there is
// no tail-masking concern.
type TypedHV[T Element] struct {
	data []T
}

// NewTyped returns a zero-filled TypedHV of the given dimension.
func NewTyped[T Element](dims int) *TypedHV[T] {
	if dims <= 0 {
		panic("hv: dims must be positive")
	}
	return &TypedHV[T]{data: make([]T, dims)}
}

// Dims returns the dimension.
func (v *TypedHV[T]) Dims() int { return len(v.data) }

// At returns element i.
func (v *TypedHV[T]) At(i int) T { return v.data[i] }

// Set assigns element i.
func (v *TypedHV[T]) Set(i int, val T) { v.data[i] = val }

// Raw exposes the backing slice.
func (v *TypedHV[T]) Raw() []T { return v.data }

// BindMul writes the element-wise product of a and b into out, the typed
// analogue of XOR binding.
func BindMul[T Element](a, b, out *TypedHV[T]) {
	requireSameTypedDims(a, b, out)
	for i := range out.data {
		out.data[i] = a.data[i] * b.data[i]
	}
}

// BundleAdd writes the element-wise sum of a and b into out. Normalization,
// if desired, is the caller's concern.
func BundleAdd[T Element](a, b, out *TypedHV[T]) {
	requireSameTypedDims(a, b, out)
	for i := range out.data {
		out.data[i] = a.data[i] + b.data[i]
	}
}

// PermuteRotateTyped writes the left-rotation of in by k positions into out.
func PermuteRotateTyped[T Element](in *TypedHV[T], k int, out *TypedHV[T]) {
	requireSameTypedDims(in, out)
	d := len(in.data)
	shift := k % d
	for i := 0; i < d; i++ {
		out.data[i] = in.data[(i+d-shift)%d]
	}
}

// cosineEps guards the denominator against division by zero.
const cosineEps = 1e-12

// Cosine returns the cosine similarity of a and b. Complex elements are
// conjugated on the left, and only the real part of the inner product
// contributes.
func Cosine[T Element](a, b *TypedHV[T]) float64 {
	requireSameTypedDims(a, b)
	var num, na, nb float64
	for i := range a.data {
		num += innerProductTerm(a.data[i], b.data[i])
		na += squaredNorm(a.data[i])
		nb += squaredNorm(b.data[i])
	}
	return num / (math.Sqrt(na)*math.Sqrt(nb) + cosineEps)
}

func innerProductTerm[T Element](l, r T) float64 {
	switch lv := any(l).(type) {
	case float32:
		return float64(lv) * float64(any(r).(float32))
	case float64:
		return lv * any(r).(float64)
	case complex64:
		p := complex128(conj64(lv)) * complex128(any(r).(complex64))
		return real(p)
	case complex128:
		rv := any(r).(complex128)
		return real(complex(real(lv), -imag(lv)) * rv)
	}
	return 0
}

func squaredNorm[T Element](v T) float64 {
	switch vv := any(v).(type) {
	case float32:
		return float64(vv) * float64(vv)
	case float64:
		return vv * vv
	case complex64:
		return float64(real(vv)*real(vv) + imag(vv)*imag(vv))
	case complex128:
		return real(vv)*real(vv) + imag(vv)*imag(vv)
	}
	return 0
}

func conj64(c complex64) complex64 {
	return complex(real(c), -imag(c))
}

func requireSameTypedDims[T Element](vecs ...*TypedHV[T]) {
	d := len(vecs[0].data)
	for _, v := range vecs[1:] {
		if len(v.data) != d {
			panic("hv: dimension mismatch")
		}
	}
}
