package stream

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/Amansingh-afk/hyperstream/assoc"
	"github.com/Amansingh-afk/hyperstream/encode"
	"github.com/Amansingh-afk/hyperstream/hv"
)

// Event kinds routed by the ingestor.
const (
	KindSymbol  = "symbol"
	KindNumeric = "numeric"
	KindVector  = "vector"
	KindLabel   = "label"
)

// Payload carries the kind-specific body of an event. Exactly one field is
// meaningful per kind.
type Payload struct {
	Sym   string    `json:"sym,omitempty"`
	Val   float64   `json:"val,omitempty"`
	Vec   []float32 `json:"vec,omitempty"`
	Label string    `json:"label,omitempty"`
}

// Event is one record of the canonical NDJSON stream schema.
type Event struct {
	V       int     `json:"v"`
	Seq     uint64  `json:"seq"`
	Src     string  `json:"src"`
	EID     string  `json:"eid"`
	Kind    string  `json:"kind"`
	TSMs    int64   `json:"ts_ms"` // informational only
	Payload Payload `json:"payload"`
}

// DecodeEvents reads newline-delimited JSON events from r. Blank lines are
// skipped; a malformed line fails the whole decode.
func DecodeEvents(r io.Reader) ([]Event, error) {
	var events []Event
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("stream: line %d: %w", line, err)
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("stream: read events: %w", err)
	}
	return events, nil
}

// SortEvents orders events by the total order (seq, src, eid) so that any
// merge of per-source streams ingests identically.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Seq != b.Seq {
			return a.Seq < b.Seq
		}
		if a.Src != b.Src {
			return a.Src < b.Src
		}
		return a.EID < b.EID
	})
}

// Fixed ingestor parameters. These are part of the golden-stream contract:
// changing any of them invalidates committed checkpoint hashes.
const (
	ingestSymbolSeed     = 0x9e3779b97f4a7c15
	ingestProjectionSeed = 0x51ed2701f3a5c7b9
	ingestItemSeed       = 0x123456789abcdef0
	ingestLabelIDSeed    = 0xfeedf00d
	ingestThermoMin      = 0.0
	ingestThermoMax      = 100.0
	ingestProtoCapacity  = 16
	ingestClusterCap     = 4
	observationLabel     = 1
)

// Ingestor routes a totally ordered event stream through fixed encoders into
// an observation cluster and a prototype memory:
//
//   - symbol events encode via the symbol encoder,
//   - numeric events via a thermometer over [0, 100],
//   - vector events via random projection,
//
// each updating the cluster row for label 1 and becoming the "last observation". A label
// event binds the last observation to the label's item vector and learns it
// under the label's hashed id.
//
// Checkpoints are taken every Interval events: the hash of the finalized
// observation cluster, folded with a rolling mix of the newest prototype's
// first word. Identical for every chunking of the same ordered stream.
type Ingestor struct {
	dims     int
	interval int

	sym   *encode.SymbolEncoder
	therm *encode.ThermometerEncoder
	proj  *encode.RandomProjectionEncoder
	item  *encode.ItemMemory

	protos  *assoc.PrototypeStore
	cluster *assoc.ClusterStore

	lastObs *hv.BinaryHV
	scratch *hv.BinaryHV
	labelHV *hv.BinaryHV
	out     *hv.BinaryHV

	events int
	mix    uint64
	chkpts []Checkpoint
}

// NewIngestor returns an ingestor over vectors of the given dimension,
// checkpointing every interval events.
func NewIngestor(dims, interval int) *Ingestor {
	if interval <= 0 {
		panic("stream: interval must be positive")
	}
	return &Ingestor{
		dims:     dims,
		interval: interval,
		sym:      encode.NewSymbolEncoder(dims, ingestSymbolSeed),
		therm:    encode.NewThermometerEncoder(dims, ingestThermoMin, ingestThermoMax),
		proj:     encode.NewRandomProjectionEncoder(dims, ingestProjectionSeed),
		item:     encode.NewItemMemory(dims, ingestItemSeed),
		protos:   assoc.NewPrototypeStore(dims, ingestProtoCapacity),
		cluster:  assoc.NewClusterStore(dims, ingestClusterCap),
		lastObs:  hv.NewBinary(dims),
		scratch:  hv.NewBinary(dims),
		labelHV:  hv.NewBinary(dims),
		out:      hv.NewBinary(dims),
	}
}

// Ingest consumes a contiguous slice of the ordered stream.
func (g *Ingestor) Ingest(events []Event) {
	for i := range events {
		g.ingestOne(&events[i])
	}
}

func (g *Ingestor) ingestOne(ev *Event) {
	switch ev.Kind {
	case KindSymbol:
		g.sym.EncodeToken(ev.Payload.Sym, g.scratch)
		g.observe()
	case KindNumeric:
		g.therm.Encode(ev.Payload.Val, g.scratch)
		g.observe()
	case KindVector:
		if len(ev.Payload.Vec) > 0 {
			g.proj.Encode(ev.Payload.Vec, g.scratch)
		} else {
			g.scratch.Clear()
		}
		g.observe()
	case KindLabel:
		g.item.EncodeToken(ev.Payload.Label, g.labelHV)
		bound := hv.NewBinary(g.dims)
		hv.Bind(g.lastObs, g.labelHV, bound)
		labelID := encode.FNV1a64(ev.Payload.Label, ingestLabelIDSeed)
		// A full prototype memory drops further labels; the stream keeps going.
		_ = g.protos.Learn(labelID, bound)
	}

	if n := g.protos.Size(); n > 0 {
		g.mix ^= g.protos.Entries()[n-1].HV.Words()[0]
	}

	g.events++
	if g.events%g.interval == 0 {
		g.chkpts = append(g.chkpts, Checkpoint{
			Events: uint64(g.events),
			Hash:   g.stateHash(),
		})
	}
}

// observe updates the cluster row for label 1 with the freshly encoded scratch vector and
// makes it the last observation.
func (g *Ingestor) observe() {
	_ = g.cluster.Update(observationLabel, g.scratch)
	g.lastObs.CopyFrom(g.scratch)
}

func (g *Ingestor) stateHash() uint64 {
	g.cluster.Finalize(observationLabel, g.out)
	return HashWords(g.out.Words()) ^ g.mix
}

// Events returns the number of events ingested.
func (g *Ingestor) Events() int { return g.events }

// Checkpoints returns the recorded checkpoints in order.
func (g *Ingestor) Checkpoints() []Checkpoint { return g.chkpts }

// FinalHash returns the state hash over everything ingested so far.
func (g *Ingestor) FinalHash() uint64 { return g.stateHash() }

// Prototypes exposes the learned prototype store for inspection.
func (g *Ingestor) Prototypes() *assoc.PrototypeStore { return g.protos }

// Classify returns the label id of the prototype nearest to the binding of
// the last observation with the label vector for name, or def when nothing
// has been learned.
func (g *Ingestor) Classify(name string, def uint64) uint64 {
	g.item.EncodeToken(name, g.labelHV)
	bound := hv.NewBinary(g.dims)
	hv.Bind(g.lastObs, g.labelHV, bound)
	return g.protos.Classify(bound, def)
}
