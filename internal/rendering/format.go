package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// Format is an output representation of a rendered document.
type Format string

// Supported output formats
const (
	FormatHTML  Format = "html"
	FormatText  Format = "text"
	FormatLaTeX Format = "latex"
)

// ParseFormat parses a format name. An empty name selects HTML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatText, FormatLaTeX:
		return f, nil
	case "", "htm":
		return FormatHTML, nil
	case "txt":
		return FormatText, nil
	case "tex":
		return FormatLaTeX, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected html, text or latex)", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatLaTeX:
		return "application/x-tex; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}

// Extension returns the file extension, with the dot, used for the format.
func (f Format) Extension() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatLaTeX:
		return ".tex"
	default:
		return ".html"
	}
}

// RenderFormat renders doc in the requested format. The layout only
// affects HTML and plain-text output.
func RenderFormat(doc types.Document, id types.TemplateID, format Format) (string, error) {
	switch format {
	case FormatHTML, "":
		return Render(doc, id, Options{})
	case FormatText:
		html, err := Render(doc, id, Options{ExportMode: true})
		if err != nil {
			return "", err
		}
		return PlainText(html)
	case FormatLaTeX:
		return RenderLaTeX(doc)
	default:
		return "", &RenderError{Message: fmt.Sprintf("unsupported format %q", format)}
	}
}
