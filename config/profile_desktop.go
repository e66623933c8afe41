//go:build !hyperstream_profile_embedded

package config

const (
	profileName            = "desktop"
	profileEmbedded        = false
	profileDefaultDim      = 10000
	profileDefaultCapacity = 256
)
