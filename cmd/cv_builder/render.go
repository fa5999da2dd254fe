package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a CV document as HTML, text or LaTeX",
	Long: `Render a CV document with one layout, or with every layout when
--template all is given. Without --in the sample document is rendered.`,
	RunE: runRender,
}

var (
	renderInputFile string
	renderTemplate  string
	renderFormat    string
	renderOutput    string
)

func init() {
	renderCmd.Flags().StringVarP(&renderInputFile, "in", "i", "", "Path to document JSON, or - for stdin (default: sample document)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Layout: modern, sidebar, classic or all (default from config)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Output format: html, text or latex")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Output file, or directory with --template all (default: stdout)")

	rootCmd.AddCommand(renderCmd)
}

// renderedPage is one layout's output.
type renderedPage struct {
	template types.TemplateID
	content  string
}

func runRender(cmd *cobra.Command, _ []string) error {
	doc, err := loadDocument(renderInputFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	format, err := rendering.ParseFormat(renderFormat)
	if err != nil {
		return err
	}

	if strings.EqualFold(strings.TrimSpace(renderTemplate), "all") {
		if renderOutput == "" || renderOutput == "-" {
			return fmt.Errorf("--out must name a directory when rendering all templates")
		}
		pages, err := renderAll(cmd.Context(), doc, format)
		if err != nil {
			return err
		}
		for _, page := range pages {
			path := filepath.Join(renderOutput, string(page.template)+format.Extension())
			if err := writeOutput(path, []byte(page.content), cmd.OutOrStdout()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		}
		return nil
	}

	id := cfg.Template()
	if renderTemplate != "" {
		if id, err = types.ParseTemplateID(renderTemplate); err != nil {
			return err
		}
	}

	out, err := rendering.RenderFormat(doc, id, format)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	if err := writeOutput(renderOutput, []byte(out), cmd.OutOrStdout()); err != nil {
		return err
	}
	if renderOutput != "" && renderOutput != "-" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", renderOutput)
	}
	return nil
}

// renderAll renders doc with every layout concurrently. Results keep the
// layout display order.
func renderAll(ctx context.Context, doc types.Document, format rendering.Format) ([]renderedPage, error) {
	infos := types.Templates()
	pages := make([]renderedPage, len(infos))

	g, gCtx := errgroup.WithContext(ctx)
	for i, info := range infos {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out, err := rendering.RenderFormat(doc, info.ID, format)
			if err != nil {
				return fmt.Errorf("rendering %s failed: %w", info.ID, err)
			}
			pages[i] = renderedPage{template: info.ID, content: out}
			logger.Debug("rendered", zap.String("template", string(info.ID)), zap.Int("bytes", len(out)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}
