package config_test

import (
	"testing"

	"github.com/Amansingh-afk/hyperstream/backend"
	"github.com/Amansingh-afk/hyperstream/config"
)

func TestProfile_Defaults(t *testing.T) {
	switch config.Profile() {
	case "desktop":
		if config.DefaultCapacity() != 256 {
			t.Fatalf("desktop default capacity: want 256, got %d", config.DefaultCapacity())
		}
	case "embedded":
		if config.DefaultDim() != 2048 || config.DefaultCapacity() != 16 {
			t.Fatalf("embedded defaults: want 2048/16, got %d/%d",
				config.DefaultDim(), config.DefaultCapacity())
		}
	default:
		t.Fatalf("unknown profile %q", config.Profile())
	}
}

func TestStorageEstimators(t *testing.T) {
	if got := config.BinaryHVStorageBytes(64); got != 8 {
		t.Fatalf("64-bit hv: want 8 bytes, got %d", got)
	}
	if got := config.BinaryHVStorageBytes(65); got != 16 {
		t.Fatalf("65-bit hv: want 16 bytes, got %d", got)
	}
	if got := config.BinaryHVStorageBytes(10000); got != 157*8 {
		t.Fatalf("10000-bit hv: want %d bytes, got %d", 157*8, got)
	}
	// Prototype: capacity * (label + packed vector).
	if got := config.PrototypeStorageBytes(128, 4); got != 4*(8+16) {
		t.Fatalf("prototype: want %d, got %d", 4*(8+16), got)
	}
	// Cluster: labels + counts + per-bit counters.
	if got := config.ClusterStorageBytes(128, 4); got != 4*8+4*4+4*128*4 {
		t.Fatalf("cluster: want %d, got %d", 4*8+4*4+4*128*4, got)
	}
	if got := config.CleanupStorageBytes(128, 4); got != 4*16 {
		t.Fatalf("cleanup: want %d, got %d", 4*16, got)
	}
}

func TestDescribe_ConsistentWithBackend(t *testing.T) {
	r := config.Describe(2048)
	if r.Profile != config.Profile() {
		t.Fatal("report profile mismatch")
	}
	if r.Features != backend.Capability() {
		t.Fatal("report features mismatch")
	}
	if r.ForceScalar != backend.ForceScalar {
		t.Fatal("report force-scalar mismatch")
	}
	if r.HammingThreshold != backend.HammingThreshold() {
		t.Fatal("report threshold mismatch")
	}
	want := backend.Describe(2048, backend.Capability())
	if r.Policy != want {
		t.Fatalf("report policy mismatch: got %+v, want %+v", r.Policy, want)
	}
}

func TestDescribe_ThresholdOverride(t *testing.T) {
	t.Setenv(backend.ThresholdEnvVar, "512")
	r := config.Describe(1024)
	if !r.ThresholdOverridden || r.HammingThreshold != 512 {
		t.Fatalf("want overridden threshold 512, got %d (overridden=%v)",
			r.HammingThreshold, r.ThresholdOverridden)
	}
}
