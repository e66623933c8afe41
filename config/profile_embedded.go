//go:build hyperstream_profile_embedded

package config

// Conservative defaults for constrained targets.
const (
	profileName            = "embedded"
	profileEmbedded        = true
	profileDefaultDim      = 2048
	profileDefaultCapacity = 16
)
