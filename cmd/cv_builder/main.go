// Package main provides the cv_builder command: an HTTP editing server and
// offline commands for rendering, exporting and validating CV documents.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose    bool
	configPath string

	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cv_builder",
	Short: "CV builder with undo/redo editing sessions",
	Long: "cv_builder edits CV documents with full undo/redo history, renders them with " +
		"modern, sidebar or classic layouts, exports A4 PDFs and drafts text with Gemini.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath, os.Getenv)
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := observability.NewLogger(verbose || cfg.Verbose)
		if err != nil {
			return err
		}
		logger = l
		logger.Debug("configuration loaded",
			zap.String("config", configPath),
			zap.Int("port", cfg.Port),
			zap.String("template", cfg.DefaultTemplate),
			zap.Bool("api_key", cfg.APIKey != ""))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
