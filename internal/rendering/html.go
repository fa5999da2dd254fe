package rendering

import (
	"embed"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/cv-builder/internal/types"
)

//go:embed templates/*.html.tmpl
var htmlFS embed.FS

// Options controls how a document is rendered.
type Options struct {
	// ExportMode renders the bare A4 page used for PDF export, without the
	// on-screen background, margins and shadow.
	ExportMode bool
}

// pageData is what the HTML layouts execute against.
type pageData struct {
	Doc        types.Document
	Theme      template.CSS
	ThemeTint  template.CSS
	Image      template.URL
	HasImage   bool
	ExportMode bool
}

var (
	htmlOnce sync.Once
	htmlSet  *template.Template
	htmlErr  error
)

func htmlTemplates() (*template.Template, error) {
	htmlOnce.Do(func() {
		htmlSet, htmlErr = template.New("cv").Funcs(template.FuncMap{
			"period": period,
			"degree": degree,
			"deref":  deref,
		}).ParseFS(htmlFS, "templates/*.html.tmpl")
		if htmlErr != nil {
			htmlErr = &TemplateError{Message: "failed to parse HTML layouts", Cause: htmlErr}
		}
	})
	return htmlSet, htmlErr
}

// Render produces a standalone HTML page for doc in the given layout.
// Unknown or empty layout ids render with the default layout.
// The output depends only on its inputs.
func Render(doc types.Document, id types.TemplateID, opts Options) (string, error) {
	tmpl, err := htmlTemplates()
	if err != nil {
		return "", err
	}

	switch id {
	case types.TemplateModern, types.TemplateSidebar, types.TemplateClassic:
	default:
		id = types.DefaultTemplate
	}

	data := newPageData(doc, opts)

	var out strings.Builder
	if err := tmpl.ExecuteTemplate(&out, string(id), data); err != nil {
		return "", &TemplateError{
			Template: string(id),
			Message:  "failed to execute template",
			Cause:    err,
		}
	}
	return out.String(), nil
}

func newPageData(doc types.Document, opts Options) pageData {
	doc.Normalize()

	theme := doc.ThemeColor
	if !types.IsHexColor(theme) {
		theme = types.DefaultThemeColor
	}

	data := pageData{
		Doc:        doc,
		Theme:      template.CSS(theme),
		ThemeTint:  template.CSS(expandHex(theme) + "30"),
		ExportMode: opts.ExportMode,
	}
	if doc.Profile.Image != nil && safeImageURL(*doc.Profile.Image) {
		data.Image = template.URL(*doc.Profile.Image)
		data.HasImage = true
	}
	return data
}

// safeImageURL accepts inline raster images and remote http(s) images.
func safeImageURL(u string) bool {
	u = strings.TrimSpace(u)
	lower := strings.ToLower(u)
	switch {
	case strings.HasPrefix(lower, "data:image/svg"):
		return false
	case strings.HasPrefix(lower, "data:image/"):
		return !strings.ContainsAny(u, `"'<>`)
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		return !strings.ContainsAny(u, `"'<> `)
	}
	return false
}

// expandHex turns #abc into #aabbcc so an alpha suffix can be appended.
func expandHex(c string) string {
	if len(c) != 4 {
		return c
	}
	return string([]byte{'#', c[1], c[1], c[2], c[2], c[3], c[3]})
}

// period formats the date range of an experience entry. present replaces
// the end date of a current position.
func period(e types.Experience, present string) string {
	end := e.EndDate
	if e.Current {
		end = present
	}
	switch {
	case e.StartDate == "":
		return end
	case end == "":
		return e.StartDate
	}
	return e.StartDate + " - " + end
}

// degree formats "Degree in Field".
func degree(e types.Education) string {
	if e.Field == "" {
		return e.Degree
	}
	if e.Degree == "" {
		return e.Field
	}
	return e.Degree + " in " + e.Field
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
