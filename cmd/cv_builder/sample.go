package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the sample CV document as JSON",
	Long:  "Write the sample CV document a new session starts from. Use it as a starting point for your own document.",
	RunE:  runSample,
}

var sampleOutput string

func init() {
	sampleCmd.Flags().StringVarP(&sampleOutput, "out", "o", "", "Output file (default: stdout)")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, _ []string) error {
	data, err := json.MarshalIndent(types.SampleDocument(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sample document: %w", err)
	}
	data = append(data, '\n')
	return writeOutput(sampleOutput, data, cmd.OutOrStdout())
}
