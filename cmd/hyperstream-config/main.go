// hyperstream-config prints the active HyperStream configuration: build
// profile, CPU feature mask, backend policy decisions and storage estimates.
// Diagnostic tool only; it consumes nothing but the public APIs.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Amansingh-afk/hyperstream/config"
)

var log = logrus.New()

func main() {
	var (
		dims     int
		capacity int
		verbose  bool
	)

	root := &cobra.Command{
		Use:   "hyperstream-config",
		Short: "Report HyperStream build profile, CPU features and backend policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			if dims <= 0 {
				return fmt.Errorf("invalid --dim %d: must be positive", dims)
			}
			if capacity <= 0 {
				capacity = config.DefaultCapacity()
			}
			report(cmd, dims, capacity)
			return nil
		},
	}
	root.Flags().IntVar(&dims, "dim", config.DefaultDim(), "hypervector dimension to evaluate the policy for")
	root.Flags().IntVar(&capacity, "capacity", config.DefaultCapacity(), "store capacity for the storage estimates")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("report failed")
		os.Exit(1)
	}
}

func report(cmd *cobra.Command, dims, capacity int) {
	r := config.Describe(dims)
	log.WithFields(logrus.Fields{
		"profile":  r.Profile,
		"features": r.Features.String(),
	}).Debug("collected configuration report")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "profile:            %s\n", r.Profile)
	fmt.Fprintf(out, "default dimension:  %d\n", r.DefaultDim)
	fmt.Fprintf(out, "default capacity:   %d\n", r.DefaultCapacity)
	fmt.Fprintf(out, "cpu features:       %s\n", r.Features)
	fmt.Fprintf(out, "force scalar:       %v\n", r.ForceScalar)
	fmt.Fprintf(out, "hamming threshold:  %d (overridden: %v)\n", r.HammingThreshold, r.ThresholdOverridden)
	fmt.Fprintf(out, "bind backend:       %s (%s)\n", r.Policy.Bind, r.Policy.BindReason)
	fmt.Fprintf(out, "hamming backend:    %s (%s)\n", r.Policy.Hamming, r.Policy.HammingReason)
	fmt.Fprintf(out, "storage @ dim=%d capacity=%d:\n", dims, capacity)
	fmt.Fprintf(out, "  binary hv:        %d bytes\n", config.BinaryHVStorageBytes(dims))
	fmt.Fprintf(out, "  prototype store:  %d bytes\n", config.PrototypeStorageBytes(dims, capacity))
	fmt.Fprintf(out, "  cluster store:    %d bytes\n", config.ClusterStorageBytes(dims, capacity))
	fmt.Fprintf(out, "  cleanup store:    %d bytes\n", config.CleanupStorageBytes(dims, capacity))
}
