// Package main provides the entry point for the phishscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for phishscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phishscan",
		Short: "Phishing page feature extractor",
		Long: `Phishscan extracts machine-learning features from suspected phishing pages.

It analyzes the URL, page content, HTML structure, urgency cues, and
embedded images, and emits a fixed-schema feature vector plus a
human-readable summary of the suspicious signals it found.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewDatasetCmd())
	cmd.AddCommand(NewVectorizerCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
