// Package hser reads and writes the HSER1 binary snapshot format for
// associative memories.
//
// Layout (little-endian, fixed-width fields):
//
//	magic    5 bytes  "HSER1"
//	kind     u8       1 = prototype, 2 = cluster
//	dim      u64
//	capacity u64
//	size     u64      valid items, <= capacity
//	body     prototype: per item label u64 + ceil(dim/64) words
//	         cluster:   labels[size] u64, counts[size] i32, sums[size*dim] i32
//
// Version 1.1 appends an optional trailer: the 4-byte tag "HSX1" followed by
// the IEEE CRC-32 of the body bytes (header and tag excluded). Writers emit
// the trailer unless built with the hyperstream_hser1_v1 tag; readers accept
// both forms, verifying the trailer only when the stream is seekable and the
// tag is present.
package hser

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/Amansingh-afk/hyperstream/assoc"
	"github.com/Amansingh-afk/hyperstream/hv"
)

// Magic is the five-byte header magic.
const Magic = "HSER1"

// TrailerTag marks the optional v1.1 integrity trailer.
const TrailerTag = "HSX1"

// Kind identifies the serialized object type.
type Kind uint8

const (
	KindPrototype Kind = 1
	KindCluster   Kind = 2
)

// headerSize is the fixed encoded header length in bytes.
const headerSize = 5 + 1 + 8 + 8 + 8

var (
	// ErrMagic means the stream does not start with the HSER1 magic.
	ErrMagic = errors.New("hser: bad magic")
	// ErrKind means the header kind does not match the destination.
	ErrKind = errors.New("hser: kind mismatch")
	// ErrShape means dim or capacity differ from the destination's.
	ErrShape = errors.New("hser: dimension or capacity mismatch")
	// ErrSize means the header size field exceeds capacity.
	ErrSize = errors.New("hser: size exceeds capacity")
	// ErrChecksum means the v1.1 trailer CRC does not match the body.
	ErrChecksum = errors.New("hser: checksum mismatch")
	// ErrNotEmpty means the destination store already holds items.
	ErrNotEmpty = errors.New("hser: destination not empty")
)

type header struct {
	kind     Kind
	dim      uint64
	capacity uint64
	size     uint64
}

func writeHeader(w io.Writer, h header) error {
	buf := make([]byte, headerSize)
	copy(buf, Magic)
	buf[5] = byte(h.kind)
	binary.LittleEndian.PutUint64(buf[6:], h.dim)
	binary.LittleEndian.PutUint64(buf[14:], h.capacity)
	binary.LittleEndian.PutUint64(buf[22:], h.size)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("hser: write header: %w", err)
	}
	return nil
}

func readHeader(r io.Reader) (header, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return header{}, fmt.Errorf("hser: read header: %w", err)
	}
	if string(buf[:5]) != Magic {
		return header{}, ErrMagic
	}
	return header{
		kind:     Kind(buf[5]),
		dim:      binary.LittleEndian.Uint64(buf[6:]),
		capacity: binary.LittleEndian.Uint64(buf[14:]),
		size:     binary.LittleEndian.Uint64(buf[22:]),
	}, nil
}

func writeTrailerCRC(w io.Writer, crc uint32) error {
	buf := make([]byte, 8)
	copy(buf, TrailerTag)
	binary.LittleEndian.PutUint32(buf[4:], crc)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("hser: write trailer: %w", err)
	}
	return nil
}

// tryReadTrailer attempts to read a v1.1 trailer. Only seekable streams are
// probed; on a missing or foreign tag the stream is rewound and (0, false)
// is returned so the payload loads as plain v1.
func tryReadTrailer(r io.Reader) (uint32, bool) {
	seeker, ok := r.(io.Seeker)
	if !ok {
		return 0, false
	}
	pos, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false
	}
	rewind := func() {
		_, _ = seeker.Seek(pos, io.SeekStart)
	}
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		rewind()
		return 0, false
	}
	if string(buf[:4]) != TrailerTag {
		rewind()
		return 0, false
	}
	if _, err := io.ReadFull(r, buf[4:8]); err != nil {
		rewind()
		return 0, false
	}
	return binary.LittleEndian.Uint32(buf[4:8]), true
}

func putWords(dst []byte, words []uint64) {
	for i, w := range words {
		binary.LittleEndian.PutUint64(dst[i*8:], w)
	}
}

func getWords(src []byte, words []uint64) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(src[i*8:])
	}
}

// SavePrototype writes s to w. The v1.1 trailer is appended unless the
// strict-v1 build tag is set.
func SavePrototype(w io.Writer, s *assoc.PrototypeStore) error {
	entries := s.Entries()
	err := writeHeader(w, header{
		kind:     KindPrototype,
		dim:      uint64(s.Dims()),
		capacity: uint64(s.Capacity()),
		size:     uint64(len(entries)),
	})
	if err != nil {
		return err
	}
	wordCount := hv.NumWords(s.Dims())
	item := make([]byte, 8+8*wordCount)
	crc := uint32(0)
	for i := range entries {
		binary.LittleEndian.PutUint64(item, entries[i].Label)
		putWords(item[8:], entries[i].HV.Words())
		crc = crc32.Update(crc, crc32.IEEETable, item)
		if _, err := w.Write(item); err != nil {
			return fmt.Errorf("hser: write entry: %w", err)
		}
	}
	if writeTrailer {
		return writeTrailerCRC(w, crc)
	}
	return nil
}

// LoadPrototype reads a prototype snapshot from r into s, which must be
// empty and match the stream's dim and capacity. On any failure s is left
// empty.
func LoadPrototype(r io.Reader, s *assoc.PrototypeStore) error {
	if s.Size() != 0 {
		return ErrNotEmpty
	}
	h, err := readHeader(r)
	if err != nil {
		return err
	}
	if h.kind != KindPrototype {
		return ErrKind
	}
	if h.dim != uint64(s.Dims()) || h.capacity != uint64(s.Capacity()) {
		return ErrShape
	}
	if h.size > h.capacity {
		return ErrSize
	}
	wordCount := hv.NumWords(s.Dims())
	itemLen := 8 + 8*wordCount
	body := make([]byte, int(h.size)*itemLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return fmt.Errorf("hser: read body: %w", err)
	}
	if crcFile, ok := tryReadTrailer(r); ok {
		if crc32.ChecksumIEEE(body) != crcFile {
			return ErrChecksum
		}
	}
	// Commit only after the whole body verified.
	words := make([]uint64, wordCount)
	for i := 0; i < int(h.size); i++ {
		item := body[i*itemLen:]
		label := binary.LittleEndian.Uint64(item)
		getWords(item[8:], words)
		if err := s.Learn(label, hv.FromWords(s.Dims(), words)); err != nil {
			return fmt.Errorf("hser: load entry: %w", err)
		}
	}
	return nil
}

// SaveCluster writes s to w. The v1.1 trailer is appended unless the
// strict-v1 build tag is set.
func SaveCluster(w io.Writer, s *assoc.ClusterStore) error {
	v := s.GetView()
	err := writeHeader(w, header{
		kind:     KindCluster,
		dim:      uint64(s.Dims()),
		capacity: uint64(s.Capacity()),
		size:     uint64(v.Size),
	})
	if err != nil {
		return err
	}
	body := encodeClusterBody(v, s.Dims())
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			return fmt.Errorf("hser: write body: %w", err)
		}
	}
	if writeTrailer {
		return writeTrailerCRC(w, crc32.ChecksumIEEE(body))
	}
	return nil
}

func encodeClusterBody(v assoc.View, dims int) []byte {
	n := v.Size
	body := make([]byte, n*8+n*4+n*dims*4)
	off := 0
	for _, l := range v.Labels {
		binary.LittleEndian.PutUint64(body[off:], l)
		off += 8
	}
	for _, c := range v.Counts {
		binary.LittleEndian.PutUint32(body[off:], uint32(c))
		off += 4
	}
	for _, s := range v.Sums {
		binary.LittleEndian.PutUint32(body[off:], uint32(s))
		off += 4
	}
	return body
}

// LoadCluster reads a cluster snapshot from r into s, which must be empty
// and match the stream's dim and capacity. On any failure s is left empty.
func LoadCluster(r io.Reader, s *assoc.ClusterStore) error {
	if s.Size() != 0 {
		return ErrNotEmpty
	}
	h, err := readHeader(r)
	if err != nil {
		return err
	}
	if h.kind != KindCluster {
		return ErrKind
	}
	if h.dim != uint64(s.Dims()) || h.capacity != uint64(s.Capacity()) {
		return ErrShape
	}
	if h.size > h.capacity {
		return ErrSize
	}
	n := int(h.size)
	dims := s.Dims()
	body := make([]byte, n*8+n*4+n*dims*4)
	if _, err := io.ReadFull(r, body); err != nil {
		return fmt.Errorf("hser: read body: %w", err)
	}
	if crcFile, ok := tryReadTrailer(r); ok {
		if crc32.ChecksumIEEE(body) != crcFile {
			return ErrChecksum
		}
	}
	labels := make([]uint64, n)
	counts := make([]int32, n)
	sums := make([]int32, n*dims)
	off := 0
	for i := range labels {
		labels[i] = binary.LittleEndian.Uint64(body[off:])
		off += 8
	}
	for i := range counts {
		counts[i] = int32(binary.LittleEndian.Uint32(body[off:]))
		off += 4
	}
	for i := range sums {
		sums[i] = int32(binary.LittleEndian.Uint32(body[off:]))
		off += 4
	}
	if err := s.LoadRaw(labels, counts, sums, n); err != nil {
		return fmt.Errorf("hser: load rows: %w", err)
	}
	return nil
}
