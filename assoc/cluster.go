package assoc

import "github.com/Amansingh-afk/hyperstream/hv"

// ClusterStore keeps one row of per-bit signed counters per label. Update
// adds a +/-1 vote for every bit; Finalize thresholds a row at >= 0 into a
// binary vector; ApplyDecay scales all counters toward zero.
type ClusterStore struct {
	dims     int
	capacity int
	labels   []uint64
	counts   []int32
	sums     []int32 // capacity * dims, row-major per cluster
	size     int
}

// NewClusterStore returns an empty store for up to capacity clusters of the
// given dimension.
func NewClusterStore(dims, capacity int) *ClusterStore {
	if dims <= 0 {
		panic("assoc: dims must be positive")
	}
	if capacity < 0 {
		panic("assoc: capacity must be non-negative")
	}
	return &ClusterStore{
		dims:     dims,
		capacity: capacity,
		labels:   make([]uint64, capacity),
		counts:   make([]int32, capacity),
		sums:     make([]int32, capacity*dims),
	}
}

// Dims returns the vector dimension.
func (s *ClusterStore) Dims() int { return s.dims }

// Capacity returns the maximum number of clusters.
func (s *ClusterStore) Capacity() int { return s.capacity }

// Size returns the current number of clusters.
func (s *ClusterStore) Size() int { return s.size }

// findIndex locates the row for label, or -1.
func (s *ClusterStore) findIndex(label uint64) int {
	for i := 0; i < s.size; i++ {
		if s.labels[i] == label {
			return i
		}
	}
	return -1
}

// Update votes v into the row for label, allocating a fresh row for an
// unseen label. Returns ErrFull when a new row is needed but the store is at
// capacity; the store is unchanged in that case.
func (s *ClusterStore) Update(label uint64, v *hv.BinaryHV) error {
	if v.Dims() != s.dims {
		panic("assoc: dimension mismatch")
	}
	idx := s.findIndex(label)
	if idx < 0 {
		if s.size >= s.capacity {
			return ErrFull
		}
		idx = s.size
		s.labels[idx] = label
		s.counts[idx] = 0
		s.size++
	}

	row := s.sums[idx*s.dims : (idx+1)*s.dims]
	for bit := 0; bit < s.dims; bit++ {
		if v.GetBit(bit) {
			row[bit]++
		} else {
			row[bit]--
		}
	}
	s.counts[idx]++
	return nil
}

// ApplyDecay multiplies every counter by factor, truncating toward zero.
// Factors outside [0, 1] are a no-op.
func (s *ClusterStore) ApplyDecay(factor float32) {
	if factor < 0 || factor > 1 {
		return
	}
	for i := 0; i < s.size; i++ {
		row := s.sums[i*s.dims : (i+1)*s.dims]
		for bit := range row {
			row[bit] = int32(float32(row[bit]) * factor)
		}
		s.counts[i] = int32(float32(s.counts[i]) * factor)
	}
}

// Finalize writes the thresholded row for label into out: bit b is set when
// its counter is >= 0. An unknown label yields the zero vector.
func (s *ClusterStore) Finalize(label uint64, out *hv.BinaryHV) {
	if out.Dims() != s.dims {
		panic("assoc: dimension mismatch")
	}
	out.Clear()
	idx := s.findIndex(label)
	if idx < 0 {
		return
	}
	row := s.sums[idx*s.dims : (idx+1)*s.dims]
	for bit := 0; bit < s.dims; bit++ {
		if row[bit] >= 0 {
			out.SetBit(bit, true)
		}
	}
}

// View is a read-only window over the store's internal buffers for
// serialization. Only the first Size rows are valid; callers must not
// mutate the slices.
type View struct {
	Labels []uint64
	Counts []int32
	Sums   []int32 // Size * Dims, row-major
	Size   int
}

// GetView returns the current view.
func (s *ClusterStore) GetView() View {
	return View{
		Labels: s.labels[:s.size],
		Counts: s.counts[:s.size],
		Sums:   s.sums[:s.size*s.dims],
		Size:   s.size,
	}
}

// LoadRaw bulk-loads n rows into an empty store. Returns ErrNotEmpty when
// the store already has rows, ErrBadInput when n exceeds capacity or the
// input slices are shorter than n requires. No partial state on failure.
func (s *ClusterStore) LoadRaw(labels []uint64, counts []int32, sums []int32, n int) error {
	if s.size != 0 {
		return ErrNotEmpty
	}
	if n < 0 || n > s.capacity {
		return ErrBadInput
	}
	if len(labels) < n || len(counts) < n || len(sums) < n*s.dims {
		return ErrBadInput
	}
	copy(s.labels, labels[:n])
	copy(s.counts, counts[:n])
	copy(s.sums, sums[:n*s.dims])
	s.size = n
	return nil
}
