package main

import (
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a summary of a CV document",
	RunE:  runShow,
}

var (
	showInputFile string
	showTemplates bool
)

func init() {
	showCmd.Flags().StringVarP(&showInputFile, "in", "i", "", "Path to document JSON, or - for stdin (default: sample document)")
	showCmd.Flags().BoolVar(&showTemplates, "templates", false, "Also list layouts and preset colours")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	doc, err := loadDocument(showInputFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintDocument(&doc)
	if showTemplates {
		printer.PrintTemplates()
	}
	return nil
}
