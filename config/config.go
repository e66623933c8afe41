// Package config exposes the build profile, default shapes, storage
// estimators and a diagnostic report combining CPU capability and backend
// policy for a given dimension.
package config

import (
	"strconv"

	"github.com/Amansingh-afk/hyperstream/backend"
	"github.com/Amansingh-afk/hyperstream/hv"
)

// defaultDimOverride can be injected at link time to override the desktop
// profile's default dimension:
//
//	go build -ldflags "-X github.com/Amansingh-afk/hyperstream/config.defaultDimOverride=16384"
//
// It is ignored under the embedded profile and when not a positive integer.
var defaultDimOverride string

// Profile returns the active build profile name: "desktop" or "embedded".
func Profile() string { return profileName }

// DefaultDim returns the profile's default hypervector dimension.
func DefaultDim() int {
	if !profileEmbedded && defaultDimOverride != "" {
		if n, err := strconv.Atoi(defaultDimOverride); err == nil && n > 0 {
			return n
		}
	}
	return profileDefaultDim
}

// DefaultCapacity returns the profile's default store capacity.
func DefaultCapacity() int { return profileDefaultCapacity }

// BinaryHVStorageBytes returns the storage size of a BinaryHV with dims bits.
func BinaryHVStorageBytes(dims int) int {
	return hv.NumWords(dims) * 8
}

// PrototypeStorageBytes returns the entry storage of a PrototypeStore.
func PrototypeStorageBytes(dims, capacity int) int {
	return capacity * (8 + BinaryHVStorageBytes(dims))
}

// ClusterStorageBytes returns the counter and metadata storage of a
// ClusterStore.
func ClusterStorageBytes(dims, capacity int) int {
	return capacity*8 + capacity*4 + capacity*dims*4
}

// CleanupStorageBytes returns the entry storage of a CleanupStore.
func CleanupStorageBytes(dims, capacity int) int {
	return capacity * BinaryHVStorageBytes(dims)
}

// Report is a point-in-time diagnostic summary.
type Report struct {
	Profile             string
	DefaultDim          int
	DefaultCapacity     int
	Features            backend.Mask
	ForceScalar         bool
	HammingThreshold    int
	ThresholdOverridden bool
	Policy              backend.Report
}

// Describe collects the configuration report for a dimension.
func Describe(dims int) Report {
	mask := backend.Capability()
	return Report{
		Profile:             Profile(),
		DefaultDim:          DefaultDim(),
		DefaultCapacity:     DefaultCapacity(),
		Features:            mask,
		ForceScalar:         backend.ForceScalar,
		HammingThreshold:    backend.HammingThreshold(),
		ThresholdOverridden: backend.ThresholdOverridden(),
		Policy:              backend.Describe(dims, mask),
	}
}
