package main

import (
	"fmt"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
)

var exportPDFCmd = &cobra.Command{
	Use:   "export-pdf",
	Short: "Export a CV document to an A4 PDF",
	Long: `Render a CV document and print it to an A4 PDF with headless Chrome.
The file is named after the profile's full name, e.g. Jane_Doe_CV.pdf.`,
	RunE: runExportPDF,
}

var (
	exportInputFile string
	exportTemplate  string
	exportOutDir    string
)

func init() {
	exportPDFCmd.Flags().StringVarP(&exportInputFile, "in", "i", "", "Path to document JSON, or - for stdin (default: sample document)")
	exportPDFCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Layout: modern, sidebar or classic (default from config)")
	exportPDFCmd.Flags().StringVarP(&exportOutDir, "out-dir", "o", "", "Output directory (default from config)")

	rootCmd.AddCommand(exportPDFCmd)
}

func runExportPDF(cmd *cobra.Command, _ []string) error {
	doc, err := loadDocument(exportInputFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	id := cfg.Template()
	if exportTemplate != "" {
		if id, err = types.ParseTemplateID(exportTemplate); err != nil {
			return err
		}
	}

	page, err := rendering.Render(doc, id, rendering.Options{ExportMode: true})
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	dir := exportOutDir
	if dir == "" {
		dir = cfg.OutputDir
	}

	path, err := newExporter().WriteFile(cmd.Context(), page, dir, doc.Profile.FullName)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
	return nil
}
