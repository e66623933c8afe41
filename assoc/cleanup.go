package assoc

import "github.com/Amansingh-afk/hyperstream/hv"

// CleanupStore is a dictionary of canonical vectors. Restore maps a noisy
// query to the nearest stored vector, denoising it.
type CleanupStore struct {
	dims     int
	capacity int
	entries  []*hv.BinaryHV
}

// NewCleanupStore returns an empty dictionary for up to capacity vectors of
// the given dimension.
func NewCleanupStore(dims, capacity int) *CleanupStore {
	if dims <= 0 {
		panic("assoc: dims must be positive")
	}
	if capacity < 0 {
		panic("assoc: capacity must be non-negative")
	}
	return &CleanupStore{
		dims:     dims,
		capacity: capacity,
		entries:  make([]*hv.BinaryHV, 0, capacity),
	}
}

// Dims returns the vector dimension.
func (s *CleanupStore) Dims() int { return s.dims }

// Capacity returns the maximum number of entries.
func (s *CleanupStore) Capacity() int { return s.capacity }

// Size returns the current number of entries.
func (s *CleanupStore) Size() int { return len(s.entries) }

// Insert appends v. Returns ErrFull at capacity.
func (s *CleanupStore) Insert(v *hv.BinaryHV) error {
	if v.Dims() != s.dims {
		panic("assoc: dimension mismatch")
	}
	if len(s.entries) >= s.capacity {
		return ErrFull
	}
	s.entries = append(s.entries, v.Clone())
	return nil
}

// Restore returns a copy of the stored vector nearest to noisy by Hamming
// distance, or fallback when the dictionary is empty. Ties break to the
// lowest index.
func (s *CleanupStore) Restore(noisy, fallback *hv.BinaryHV) *hv.BinaryHV {
	if noisy.Dims() != s.dims {
		panic("assoc: dimension mismatch")
	}
	if len(s.entries) == 0 {
		return fallback.Clone()
	}
	bestIndex := 0
	bestMatch := 0
	for i, e := range s.entries {
		match := s.dims - hv.HammingDistance(noisy, e)
		if match > bestMatch {
			bestMatch = match
			bestIndex = i
		}
	}
	return s.entries[bestIndex].Clone()
}
