package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:   "sagescan",
		Short: "SageMaker metadata scanner",
		Long: `Sagescan - SageMaker metadata scanner

Sagescan extracts model, endpoint and model-group metadata from
SageMaker and emits normalized catalog records with resolved
cross-references (deployments, training jobs, group membership).

Relationships the API does not expose directly are reconstructed from
container image paths, model-data URIs and ARNs via a precomputed
lineage index.`,
		Version: version,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the root command
func init() {
	rootCmd.SetVersionTemplate(`Sagescan {{.Version}} - SageMaker metadata scanner
`)
}
