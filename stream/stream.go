// Package stream provides a deterministic streaming pipeline with periodic
// checkpoint hashes. Feeding the same symbol sequence through the same
// configuration produces identical checkpoints and final output regardless
// of how the input is chunked, which makes the hashes usable as golden
// values for cross-platform and cross-backend regression tests.
package stream

import (
	"github.com/Amansingh-afk/hyperstream/encode"
	"github.com/Amansingh-afk/hyperstream/hv"
)

// HashWords returns the FNV-1a-64 hash of the words interpreted as
// little-endian bytes. Used for checkpoint and golden-value hashing.
func HashWords(words []uint64) uint64 {
	const (
		offset = 1469598103934665603
		prime  = 1099511628211
	)
	h := uint64(offset)
	for _, w := range words {
		for b := 0; b < 8; b++ {
			h ^= w & 0xff
			h *= prime
			w >>= 8
		}
	}
	return h
}

// Checkpoint is the state hash after a fixed number of events.
type Checkpoint struct {
	Events uint64 // total events consumed when the checkpoint was taken
	Hash   uint64 // state hash at that point (Pipeline: HashWords of the finalized vector)
}

// Pipeline feeds u64 symbols into a random-basis aggregation and records a
// checkpoint hash every Interval events.
type Pipeline struct {
	enc      *encode.RandomBasisEncoder
	interval uint64
	events   uint64
	chkpts   []Checkpoint

	snapshot *hv.BinaryHV
}

// NewPipeline returns a pipeline over vectors of the given dimension,
// checkpointing every interval events.
func NewPipeline(dims int, seed uint64, interval uint64) *Pipeline {
	if interval == 0 {
		panic("stream: interval must be positive")
	}
	return &Pipeline{
		enc:      encode.NewRandomBasisEncoder(dims, seed),
		interval: interval,
		snapshot: hv.NewBinary(dims),
	}
}

// Reset clears the encoder, the event counter and recorded checkpoints.
func (p *Pipeline) Reset() {
	p.enc.Reset()
	p.events = 0
	p.chkpts = nil
}

// Consume feeds a contiguous slice of symbols. Chunking is irrelevant:
// any partition of a stream into non-empty slices yields the same
// checkpoints and the same final output.
func (p *Pipeline) Consume(symbols []uint64) {
	for _, sym := range symbols {
		p.enc.Update(sym)
		p.events++
		if p.events%p.interval == 0 {
			p.enc.Finalize(p.snapshot)
			p.chkpts = append(p.chkpts, Checkpoint{
				Events: p.events,
				Hash:   HashWords(p.snapshot.Words()),
			})
		}
	}
}

// Events returns the total number of events consumed.
func (p *Pipeline) Events() uint64 { return p.events }

// Checkpoints returns the recorded checkpoints in order.
func (p *Pipeline) Checkpoints() []Checkpoint { return p.chkpts }

// Finalize writes the current aggregate into out and returns its hash.
func (p *Pipeline) Finalize(out *hv.BinaryHV) uint64 {
	p.enc.Finalize(out)
	return HashWords(out.Words())
}
