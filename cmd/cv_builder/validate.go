package main

import (
	"fmt"

	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a CV document against the JSON schema",
	Long: `Validate a CV document JSON file against the built-in document schema,
or against a custom schema given with --schema.`,
	RunE: runValidate,
}

var (
	validateInputFile  string
	validateSchemaFile string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to document JSON (required)")
	validateCmd.Flags().StringVarP(&validateSchemaFile, "schema", "s", "", "Path to a custom JSON schema")
	_ = validateCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validateSchemaFile != "" {
		if err := schemas.ValidateJSON(validateSchemaFile, validateInputFile); err != nil {
			return err
		}
	} else if _, err := loadDocument(validateInputFile, cmd.InOrStdin()); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", validateInputFile)
	return nil
}
