// Package hyperstream provides Hyperdimensional Computing primitives over
// bit-packed binary hypervectors: bind/bundle/permute algebra with runtime
// SIMD kernel selection, deterministic encoders, fixed-capacity associative
// memories and HSER1 snapshot serialization.
//
// The subpackages expose each layer directly (hv, backend, encode, assoc,
// hser, config, stream). This package wires them into a ready-to-use
// token-stream classifier:
//
//	c := hyperstream.NewClassifier()
//	c.Learn(1, []string{"the", "cat", "sat"})
//	c.Learn(2, []string{"stock", "price", "fell"})
//	label := c.Classify([]string{"a", "cat", "slept"}, 0)
package hyperstream

import (
	"io"

	"github.com/Amansingh-afk/hyperstream/assoc"
	"github.com/Amansingh-afk/hyperstream/config"
	"github.com/Amansingh-afk/hyperstream/encode"
	"github.com/Amansingh-afk/hyperstream/hser"
	"github.com/Amansingh-afk/hyperstream/hv"
)

// Option configures a Classifier.
type Option func(*options)

type options struct {
	dims     int
	capacity int
	seed     uint64
}

func defaultOptions() options {
	return options{
		dims:     config.DefaultDim(),
		capacity: config.DefaultCapacity(),
		seed:     encode.DefaultRandomBasisSeed,
	}
}

// WithDims sets the hypervector dimension (default: the profile's).
// Higher values increase accuracy at the cost of memory and CPU.
func WithDims(n int) Option { return func(o *options) { o.dims = n } }

// WithCapacity sets the maximum number of learned prototypes (default: the
// profile's). There is no eviction; Learn fails when full.
func WithCapacity(n int) Option { return func(o *options) { o.capacity = n } }

// WithSeed sets the encoder namespace seed. Classifiers with different
// seeds produce incompatible vectors.
func WithSeed(s uint64) Option { return func(o *options) { o.seed = s } }

// Classifier encodes token sequences into hypervectors and classifies them
// against learned prototypes by nearest neighbour. Each token contributes a
// dense deterministic symbol vector rotated by its position; a sequence is
// the majority bundle of its tokens. Not safe for concurrent use.
type Classifier struct {
	dims    int
	sym     *encode.SymbolEncoder
	bundler *hv.BinaryBundler
	store   *assoc.PrototypeStore

	scratch *hv.BinaryHV
}

// NewClassifier creates a Classifier with the given options.
func NewClassifier(opts ...Option) *Classifier {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Classifier{
		dims:    o.dims,
		sym:     encode.NewSymbolEncoder(o.dims, o.seed),
		bundler: hv.NewBundler(o.dims),
		store:   assoc.NewPrototypeStore(o.dims, o.capacity),
		scratch: hv.NewBinary(o.dims),
	}
}

// Dims returns the hypervector dimension.
func (c *Classifier) Dims() int { return c.dims }

// Len returns the number of learned prototypes.
func (c *Classifier) Len() int { return c.store.Size() }

// Encode bundles tokens, each rotated by its position, into a single
// hypervector.
func (c *Classifier) Encode(tokens []string) *hv.BinaryHV {
	c.bundler.Reset()
	for role, tok := range tokens {
		c.sym.EncodeTokenRole(tok, role, c.scratch)
		c.bundler.Accumulate(c.scratch)
	}
	out := hv.NewBinary(c.dims)
	c.bundler.Finalize(out)
	return out
}

// Learn stores the encoding of tokens under label. Returns assoc.ErrFull
// when the prototype store is at capacity.
func (c *Classifier) Learn(label uint64, tokens []string) error {
	return c.store.Learn(label, c.Encode(tokens))
}

// Classify returns the label of the nearest learned prototype, or
// defaultLabel when nothing has been learned.
func (c *Classifier) Classify(tokens []string, defaultLabel uint64) uint64 {
	return c.store.Classify(c.Encode(tokens), defaultLabel)
}

// Save writes the prototype store as an HSER1 snapshot.
func (c *Classifier) Save(w io.Writer) error {
	return hser.SavePrototype(w, c.store)
}

// Load reads an HSER1 snapshot into the classifier's store, which must be
// empty and match the snapshot's dimension and capacity.
func (c *Classifier) Load(r io.Reader) error {
	return hser.LoadPrototype(r, c.store)
}
