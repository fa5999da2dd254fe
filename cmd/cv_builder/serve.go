package main

import (
	"fmt"
	"os"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/generate"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/server"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that keeps CV editing sessions in memory and exposes
endpoints for editing, undo/redo, preview, PDF export and text generation.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

// newGenerator builds the text generation service from the loaded config.
// A missing API key yields a service that reports generation unavailable.
func newGenerator(cmd *cobra.Command) (*generate.Service, error) {
	llmConfig := llm.DefaultConfig().WithTemperature(cfg.Temperature)
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
	}
	return generate.NewFromAPIKey(cmd.Context(), llmConfig, cfg.APIKey, generate.WithLogger(logger))
}

// newExporter builds the PDF exporter from the loaded config.
func newExporter() *export.PDFExporter {
	return export.NewPDFExporter(export.Options{
		Timeout:   cfg.ExportTimeoutDuration(),
		NoSandbox: cfg.Chrome.NoSandbox,
		ExecPath:  cfg.Chrome.ExecPath,
		Logger:    logger,
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	generator, err := newGenerator(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = generator.Close() }()

	srv, err := server.New(server.Config{
		Port:             port,
		Logger:           logger,
		Sessions:         editor.NewManager(logger, cfg.Template()),
		Generator:        generator,
		Exporter:         newExporter(),
		PreviewCacheSize: cfg.PreviewCacheSize,
		RateLimit:        ratelimit.LoadConfig(os.Getenv),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("text generation",
		zap.Bool("available", generator.Available()),
		zap.String("model", generator.Model()))
	return srv.Start(cmd.Context())
}
