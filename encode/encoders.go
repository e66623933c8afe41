package encode

import "github.com/Amansingh-afk/hyperstream/hv"

// RandomBasisEncoder bundles one deterministic random vector per symbol,
// rotating each by its step index so order matters.
type RandomBasisEncoder struct {
	dims    int
	seed    uint64
	step    int
	bundler *hv.BinaryBundler

	scratch *hv.BinaryHV
	rotated *hv.BinaryHV
}

// NewRandomBasisEncoder returns a reset encoder. Use
// DefaultRandomBasisSeed when no namespace separation is needed.
func NewRandomBasisEncoder(dims int, seed uint64) *RandomBasisEncoder {
	if dims <= 0 {
		panic("encode: dims must be positive")
	}
	return &RandomBasisEncoder{
		dims:    dims,
		seed:    seed,
		bundler: hv.NewBundler(dims),
		scratch: hv.NewBinary(dims),
		rotated: hv.NewBinary(dims),
	}
}

// Dims returns the vector dimension.
func (e *RandomBasisEncoder) Dims() int { return e.dims }

// Reset clears the bundler and the step counter.
func (e *RandomBasisEncoder) Reset() {
	e.bundler.Reset()
	e.step = 0
}

// Update accumulates the vector for symbol, rotated by the current step.
// The step counter advances modulo the dimension.
func (e *RandomBasisEncoder) Update(symbol uint64) {
	GenerateRandomHV(e.seed, symbol, e.scratch)
	if e.step != 0 {
		hv.PermuteRotate(e.scratch, e.step, e.rotated)
		e.bundler.Accumulate(e.rotated)
	} else {
		e.bundler.Accumulate(e.scratch)
	}
	e.step = (e.step + 1) % e.dims
}

// Finalize writes the majority vote of everything accumulated so far.
func (e *RandomBasisEncoder) Finalize(out *hv.BinaryHV) {
	e.bundler.Finalize(out)
}

// Count returns the number of updates since the last Reset.
func (e *RandomBasisEncoder) Count() uint64 { return e.bundler.Count() }

// HashEncoderConfig parameterizes a HashEncoder.
type HashEncoderConfig struct {
	NumHashes int    // bits set per token (default DefaultNumHashes)
	Seed      uint64 // hash namespace (default DefaultHashEncoderSeed)
}

// HashEncoder sets NumHashes bits per token via double hashing, optionally
// rotating by a role index, and bundles the results.
type HashEncoder struct {
	dims    int
	k       int
	seed    uint64
	bundler *hv.BinaryBundler

	scratch *hv.BinaryHV
}

// NewHashEncoder returns a reset hash encoder. Zero config fields take
// their defaults.
func NewHashEncoder(dims int, cfg HashEncoderConfig) *HashEncoder {
	if dims <= 0 {
		panic("encode: dims must be positive")
	}
	if cfg.NumHashes == 0 {
		cfg.NumHashes = DefaultNumHashes
	}
	if cfg.NumHashes < 0 {
		panic("encode: NumHashes must be positive")
	}
	if cfg.Seed == 0 {
		cfg.Seed = DefaultHashEncoderSeed
	}
	return &HashEncoder{
		dims:    dims,
		k:       cfg.NumHashes,
		seed:    cfg.Seed,
		bundler: hv.NewBundler(dims),
		scratch: hv.NewBinary(dims),
	}
}

// Dims returns the vector dimension.
func (e *HashEncoder) Dims() int { return e.dims }

// Reset clears the bundler.
func (e *HashEncoder) Reset() {
	e.bundler.Reset()
}

// EncodeToken writes the sparse code for token into out: k bits at
// (h1 + i*h2) mod dims, rotated by role when role != 0.
func (e *HashEncoder) EncodeToken(token string, role int, out *hv.BinaryHV) {
	out.Clear()
	h1, h2 := DoubleHash(token, e.seed)
	for i := 0; i < e.k; i++ {
		pos := (h1 + uint64(i)*h2) % uint64(e.dims)
		out.SetBit(int(pos), true)
	}
	if role != 0 {
		rotated := hv.NewBinary(e.dims)
		hv.PermuteRotate(out, role, rotated)
		out.CopyFrom(rotated)
	}
}

// Update encodes token with role and accumulates it.
func (e *HashEncoder) Update(token string, role int) {
	e.EncodeToken(token, role, e.scratch)
	e.bundler.Accumulate(e.scratch)
}

// Finalize writes the majority vote of everything accumulated so far.
func (e *HashEncoder) Finalize(out *hv.BinaryHV) {
	e.bundler.Finalize(out)
}

// Count returns the number of updates since the last Reset.
func (e *HashEncoder) Count() uint64 { return e.bundler.Count() }

// UnaryIntensityEncoder maps a scalar intensity to that many 1-bits placed
// in low-discrepancy order, advancing a phase so consecutive updates spread
// across the dimension.
type UnaryIntensityEncoder struct {
	dims         int
	maxIntensity int
	order        []int
	phase        int
	bundler      *hv.BinaryBundler

	scratch *hv.BinaryHV
}

// NewUnaryIntensityEncoder returns a reset encoder clamping updates to
// maxIntensity bits.
func NewUnaryIntensityEncoder(dims, maxIntensity int) *UnaryIntensityEncoder {
	if dims <= 0 {
		panic("encode: dims must be positive")
	}
	if maxIntensity < 0 {
		panic("encode: maxIntensity must be non-negative")
	}
	return &UnaryIntensityEncoder{
		dims:         dims,
		maxIntensity: maxIntensity,
		order:        buildVanDerCorputOrder(dims),
		bundler:      hv.NewBundler(dims),
		scratch:      hv.NewBinary(dims),
	}
}

// Dims returns the vector dimension.
func (e *UnaryIntensityEncoder) Dims() int { return e.dims }

// Reset clears the bundler and the phase.
func (e *UnaryIntensityEncoder) Reset() {
	e.bundler.Reset()
	e.phase = 0
}

// Update accumulates a vector with min(intensity, maxIntensity) bits set at
// order[(phase+i) mod dims] and advances the phase by the clamped intensity.
func (e *UnaryIntensityEncoder) Update(intensity int) {
	clamped := intensity
	if clamped > e.maxIntensity {
		clamped = e.maxIntensity
	}
	if clamped < 0 {
		clamped = 0
	}
	e.scratch.Clear()
	for i := 0; i < clamped && i < e.dims; i++ {
		e.scratch.SetBit(e.order[(e.phase+i)%e.dims], true)
	}
	e.bundler.Accumulate(e.scratch)
	e.phase = (e.phase + clamped) % e.dims
}

// Finalize writes the majority vote of everything accumulated so far.
func (e *UnaryIntensityEncoder) Finalize(out *hv.BinaryHV) {
	e.bundler.Finalize(out)
}

// Count returns the number of updates since the last Reset.
func (e *UnaryIntensityEncoder) Count() uint64 { return e.bundler.Count() }

// SequentialNGramEncoder binds position-rotated symbol vectors over a
// sliding window and bundles the aggregates. The update that fills the
// window does not accumulate; aggregation starts on the following update.
type SequentialNGramEncoder struct {
	dims    int
	window  int
	seed    uint64
	history []uint64
	head    int
	count   int
	bundler *hv.BinaryBundler

	aggregate *hv.BinaryHV
	symbol    *hv.BinaryHV
	rotated   *hv.BinaryHV
}

// NewSequentialNGramEncoder returns a reset encoder with the given window
// width. Use DefaultSequentialNGramSeed when no namespace separation is
// needed.
func NewSequentialNGramEncoder(dims, window int, seed uint64) *SequentialNGramEncoder {
	if dims <= 0 {
		panic("encode: dims must be positive")
	}
	if window <= 0 {
		panic("encode: window must be positive")
	}
	return &SequentialNGramEncoder{
		dims:      dims,
		window:    window,
		seed:      seed,
		history:   make([]uint64, window),
		bundler:   hv.NewBundler(dims),
		aggregate: hv.NewBinary(dims),
		symbol:    hv.NewBinary(dims),
		rotated:   hv.NewBinary(dims),
	}
}

// Dims returns the vector dimension.
func (e *SequentialNGramEncoder) Dims() int { return e.dims }

// Window returns the window width.
func (e *SequentialNGramEncoder) Window() int { return e.window }

// Reset clears the bundler and the history window.
func (e *SequentialNGramEncoder) Reset() {
	e.bundler.Reset()
	e.head = 0
	e.count = 0
}

// Update appends symbol to the window. Once the window has been filled, each
// update folds the window into aggregate = XOR over offsets o of
// rotate(vec(history[newest-o]), o) and accumulates it.
func (e *SequentialNGramEncoder) Update(symbol uint64) {
	e.history[e.head] = symbol
	e.head = (e.head + 1) % e.window
	if e.count < e.window {
		e.count++
		return
	}

	for offset := 0; offset < e.window; offset++ {
		idx := (e.head + e.window - 1 - offset) % e.window
		GenerateRandomHV(e.seed, e.history[idx], e.symbol)
		cur := e.symbol
		if offset != 0 {
			hv.PermuteRotate(e.symbol, offset, e.rotated)
			cur = e.rotated
		}
		if offset == 0 {
			e.aggregate.CopyFrom(cur)
		} else {
			hv.Bind(e.aggregate, cur, e.aggregate)
		}
	}
	e.bundler.Accumulate(e.aggregate)
}

// Finalize writes the majority vote of everything accumulated so far.
func (e *SequentialNGramEncoder) Finalize(out *hv.BinaryHV) {
	e.bundler.Finalize(out)
}

// Count returns the number of aggregates accumulated since the last Reset.
func (e *SequentialNGramEncoder) Count() uint64 { return e.bundler.Count() }
