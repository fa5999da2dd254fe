//go:build integration
// +build integration

package export

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/require"
)

func TestExport_HeadlessChrome(t *testing.T) {
	if os.Getenv("CHROME_AVAILABLE") == "" {
		t.Skip("CHROME_AVAILABLE not set, skipping browser integration test")
	}

	html, err := rendering.Render(types.SampleDocument(), types.TemplateModern, rendering.Options{ExportMode: true})
	require.NoError(t, err)

	e := NewPDFExporter(Options{NoSandbox: true})
	pdf, err := e.Export(context.Background(), html)

	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
