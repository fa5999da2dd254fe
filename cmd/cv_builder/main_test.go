package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in-process with fresh flag values and
// returns its standard output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY", "VITE_API_KEY", "PORT", "CV_OUTPUT_DIR"} {
		t.Setenv(name, "")
	}

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into
// each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeDocument(t *testing.T, doc any) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "cv.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestSampleCommand(t *testing.T) {
	out, err := execute(t, "", "sample")
	require.NoError(t, err)

	var doc types.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	sample := types.SampleDocument()
	assert.Equal(t, sample.Profile.FullName, doc.Profile.FullName)
	assert.Len(t, doc.Experience, len(sample.Experience))
	assert.Equal(t, sample.ThemeColor, doc.ThemeColor)
}

func TestSampleThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.json")

	_, err := execute(t, "", "sample", "--out", path)
	require.NoError(t, err)

	out, err := execute(t, "", "validate", "--in", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestValidateCommand_Invalid(t *testing.T) {
	doc := types.SampleDocument()
	doc.Skills[0].Level = 9
	path := writeDocument(t, doc)

	_, err := execute(t, "", "validate", "--in", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level")
}

func TestValidateCommand_MissingFlag(t *testing.T) {
	_, err := execute(t, "", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "in" not set`)
}

func TestRenderCommand_Stdout(t *testing.T) {
	out, err := execute(t, "", "render", "--template", "sidebar")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Alex Anderson")
}

func TestRenderCommand_Stdin(t *testing.T) {
	doc := types.Empty()
	doc.Profile.FullName = "Piped Person"
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	out, err := execute(t, string(data), "render", "--in", "-", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Piped Person")
	assert.NotContains(t, out, "<")
}

func TestRenderCommand_AllTemplates(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "", "render", "--template", "all", "--format", "text", "--out", dir)
	require.NoError(t, err)

	for _, id := range []string{"modern", "sidebar", "classic"} {
		path := filepath.Join(dir, id+".txt")
		assert.Contains(t, out, path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Alex Anderson")
	}
}

func TestRenderCommand_AllNeedsDirectory(t *testing.T) {
	_, err := execute(t, "", "render", "--template", "all")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--out")
}

func TestRenderCommand_LaTeXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.tex")

	_, err := execute(t, "", "render", "--format", "latex", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `\begin{document}`)
}

func TestRenderCommand_BadFlags(t *testing.T) {
	_, err := execute(t, "", "render", "--template", "fancy")
	assert.Error(t, err)

	_, err = execute(t, "", "render", "--format", "docx")
	assert.Error(t, err)
}

func TestShowCommand(t *testing.T) {
	out, err := execute(t, "", "show", "--templates")
	require.NoError(t, err)
	assert.Contains(t, out, "CV DOCUMENT")
	assert.Contains(t, out, "TEMPLATES")
}

func TestGenerateCommand_NoAPIKey(t *testing.T) {
	_, err := execute(t, "", "generate", "summary", "--title", "Engineer", "--skills", "Go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestGenerateCommand_BlankText(t *testing.T) {
	_, err := execute(t, "", "generate", "enhance", "--role", "Engineer", "--text", "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blank")
}

func TestExportCommand_BadTemplate(t *testing.T) {
	_, err := execute(t, "", "export-pdf", "--template", "fancy", "--out-dir", t.TempDir())
	assert.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_template: classic\n"), 0644))

	out, err := execute(t, "", "render", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Education and Training")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("default_template: fancy\n"), 0644))
	_, err = execute(t, "", "render", "--config", bad)
	assert.Error(t, err)
}

func TestLoadDocument_SchemaErrors(t *testing.T) {
	path := writeDocument(t, map[string]any{"profile": "not an object"})
	_, err := loadDocument(path, nil)
	assert.Error(t, err)

	_, err = loadDocument(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}
