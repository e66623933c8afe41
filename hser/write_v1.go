//go:build hyperstream_hser1_v1

package hser

// WriteV1Only reports whether the strict-v1 writer build is active.
// Writers omit the HSX1 trailer, producing payloads byte-identical to v1.
const WriteV1Only = true

const writeTrailer = false
