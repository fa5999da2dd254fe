package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakePDF = []byte("%PDF-1.4 fake")

func TestFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alex Anderson", "Alex_Anderson_CV.pdf"},
		{"Mary  Jane\tWatson", "Mary_Jane_Watson_CV.pdf"},
		{"Solo", "Solo_CV.pdf"},
		{"", "CV.pdf"},
		{"   ", "CV.pdf"},
		{"../etc/passwd", "..etcpasswd_CV.pdf"},
		{`Dr. A\B`, "Dr._AB_CV.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.in))
		})
	}
}

func TestExport_UsesPrinter(t *testing.T) {
	var got string
	e := NewPDFExporter(Options{Printer: func(ctx context.Context, html string) ([]byte, error) {
		got = html
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return fakePDF, nil
	}})

	pdf, err := e.Export(context.Background(), "<html><body>cv</body></html>")

	require.NoError(t, err)
	assert.Equal(t, fakePDF, pdf)
	assert.Equal(t, "<html><body>cv</body></html>", got)
	assert.False(t, e.Busy())
}

func TestExport_WrapsFailure(t *testing.T) {
	boom := errors.New("chrome not found")
	e := NewPDFExporter(Options{Printer: func(context.Context, string) ([]byte, error) {
		return nil, boom
	}})

	_, err := e.Export(context.Background(), "<html></html>")

	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.ErrorIs(t, err, boom)
	assert.False(t, e.Busy())
}

func TestExport_EmptyOutput(t *testing.T) {
	e := NewPDFExporter(Options{Printer: func(context.Context, string) ([]byte, error) {
		return nil, nil
	}})

	_, err := e.Export(context.Background(), "<html></html>")

	var exportErr *ExportError
	assert.ErrorAs(t, err, &exportErr)
}

func TestExport_SecondCallFailsFastWhileBusy(t *testing.T) {
	release := make(chan struct{})
	calls := 0
	e := NewPDFExporter(Options{Printer: func(context.Context, string) ([]byte, error) {
		calls++
		<-release
		return fakePDF, nil
	}})

	done := make(chan error, 1)
	go func() {
		_, err := e.Export(context.Background(), "first")
		done <- err
	}()
	require.Eventually(t, e.Busy, time.Second, 5*time.Millisecond)

	_, err := e.Export(context.Background(), "second")
	assert.ErrorIs(t, err, ErrExportInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, calls)
	assert.False(t, e.Busy())
}

func TestExport_Timeout(t *testing.T) {
	e := NewPDFExporter(Options{
		Timeout: 20 * time.Millisecond,
		Printer: func(ctx context.Context, _ string) ([]byte, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	})

	_, err := e.Export(context.Background(), "<html></html>")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	e := NewPDFExporter(Options{Printer: func(context.Context, string) ([]byte, error) {
		return fakePDF, nil
	}})

	path, err := e.WriteFile(context.Background(), "<html></html>", dir, "Alex Anderson")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Alex_Anderson_CV.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fakePDF, data)
}

func TestNewPDFExporter_Defaults(t *testing.T) {
	e := NewPDFExporter(Options{})
	assert.Equal(t, DefaultTimeout, e.opts.Timeout)
	assert.NotNil(t, e.print)
	assert.NotNil(t, e.logger)
}
