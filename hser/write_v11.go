//go:build !hyperstream_hser1_v1

package hser

// WriteV1Only reports whether the strict-v1 writer build is active.
const WriteV1Only = false

const writeTrailer = true
