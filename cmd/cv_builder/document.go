package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
)

// loadDocument reads a CV document from path, or from stdin when path is
// "-". An empty path returns the sample document. The JSON is checked
// against the document schema before decoding.
func loadDocument(path string, stdin io.Reader) (types.Document, error) {
	if path == "" {
		return types.SampleDocument(), nil
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return types.Document{}, fmt.Errorf("failed to read document: %w", err)
	}

	if err := schemas.ValidateDocument(data); err != nil {
		return types.Document{}, err
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Document{}, fmt.Errorf("failed to unmarshal document JSON: %w", err)
	}
	doc.Normalize()
	if err := doc.Validate(); err != nil {
		return types.Document{}, fmt.Errorf("invalid document: %w", err)
	}
	return doc, nil
}

// writeOutput writes data to path, creating parent directories, or to w
// when path is empty or "-".
func writeOutput(path string, data []byte, w io.Writer) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
