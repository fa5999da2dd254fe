package rendering

import (
	"strings"
	"testing"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AllLayouts(t *testing.T) {
	doc := types.SampleDocument()

	for _, info := range types.Templates() {
		t.Run(string(info.ID), func(t *testing.T) {
			out, err := Render(doc, info.ID, Options{})
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
			assert.Contains(t, out, "Alex Anderson")
			assert.Contains(t, out, "Tech Solutions Inc.")
			assert.Contains(t, out, "University of Technology")
			assert.Contains(t, out, "Tailwind CSS")
			assert.Contains(t, out, "Spanish")
			assert.Contains(t, out, "3.8 GPA")
			assert.Contains(t, out, doc.ThemeColor)
			assert.Contains(t, out, `src="https://images.unsplash.com/`)
		})
	}
}

func TestRender_IsDeterministic(t *testing.T) {
	doc := types.SampleDocument()

	first, err := Render(doc, types.TemplateSidebar, Options{})
	require.NoError(t, err)
	second, err := Render(doc, types.TemplateSidebar, Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_ExperienceDates(t *testing.T) {
	doc := types.SampleDocument()

	modern, err := Render(doc, types.TemplateModern, Options{})
	require.NoError(t, err)
	assert.Contains(t, modern, "2020 - Present")
	assert.Contains(t, modern, "2018 - 2020")

	classic, err := Render(doc, types.TemplateClassic, Options{})
	require.NoError(t, err)
	assert.Contains(t, classic, "[ 2020 - Current ]")
	assert.Contains(t, classic, "Grade: 3.8 GPA")
}

func TestRender_OmitsEmptySections(t *testing.T) {
	doc := types.Empty()
	doc.Profile.FullName = "Sam Rivera"

	out, err := Render(doc, types.TemplateModern, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "Sam Rivera")
	assert.NotContains(t, out, "Work Experience")
	assert.NotContains(t, out, "Professional Summary")
	assert.NotContains(t, out, "<img")
}

func TestRender_PlaceholderName(t *testing.T) {
	out, err := Render(types.Empty(), types.TemplateSidebar, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "Your Name")
}

func TestRender_EscapesUserText(t *testing.T) {
	doc := types.Empty()
	doc.Profile.FullName = `<script>alert("x")</script>`

	out, err := Render(doc, types.TemplateModern, Options{})
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRender_CustomSections(t *testing.T) {
	doc := types.Empty()
	doc.Custom = []types.CustomSection{
		{ID: "a", Title: "Awards", Type: types.SectionList, Items: []string{"Hackathon winner", "Speaker"}},
		{ID: "b", Title: "Volunteering", Type: types.SectionParagraph, Description: "Code club mentor"},
	}

	out, err := Render(doc, types.TemplateClassic, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "<li>Hackathon winner</li>")
	assert.Contains(t, out, "<li>Speaker</li>")
	assert.Contains(t, out, "Code club mentor")
}

func TestRender_ImageHandling(t *testing.T) {
	tests := []struct {
		name    string
		image   string
		wantImg bool
	}{
		{"png data url", "data:image/png;base64,iVBORw0KGgo=", true},
		{"https url", "https://example.com/me.jpg", true},
		{"javascript url", "javascript:alert(1)", false},
		{"svg data url", "data:image/svg+xml;base64,PHN2Zz4=", false},
		{"quoted", `https://example.com/a".jpg`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := types.Empty()
			doc.Profile.Image = types.StringPtr(tt.image)

			out, err := Render(doc, types.TemplateModern, Options{})
			require.NoError(t, err)

			if tt.wantImg {
				assert.Contains(t, out, `src="`+tt.image+`"`)
			} else {
				assert.NotContains(t, out, "<img")
			}
		})
	}
}

func TestRender_InvalidThemeFallsBack(t *testing.T) {
	doc := types.Empty()
	doc.ThemeColor = "red; background: url(x)"

	out, err := Render(doc, types.TemplateClassic, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, types.DefaultThemeColor)
	assert.NotContains(t, out, "url(x)")
}

func TestRender_ShortHexTint(t *testing.T) {
	doc := types.Empty()
	doc.ThemeColor = "#0af"

	out, err := Render(doc, types.TemplateClassic, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "#00aaff30")
}

func TestRender_ExportMode(t *testing.T) {
	doc := types.SampleDocument()

	screen, err := Render(doc, types.TemplateModern, Options{})
	require.NoError(t, err)
	export, err := Render(doc, types.TemplateModern, Options{ExportMode: true})
	require.NoError(t, err)

	assert.Contains(t, screen, "box-shadow")
	assert.NotContains(t, export, "box-shadow")
}

func TestRender_UnknownTemplateFallsBackToDefault(t *testing.T) {
	doc := types.SampleDocument()
	want, err := Render(doc, types.DefaultTemplate, Options{})
	require.NoError(t, err)

	for _, id := range []types.TemplateID{"timeline", "fancy", ""} {
		got, err := Render(doc, id, Options{})
		require.NoError(t, err, id)
		assert.Equal(t, want, got, id)
	}
}

func TestPeriodAndDegree(t *testing.T) {
	assert.Equal(t, "2020 - Present", period(types.Experience{StartDate: "2020", EndDate: "2022", Current: true}, "Present"))
	assert.Equal(t, "2018 - 2020", period(types.Experience{StartDate: "2018", EndDate: "2020"}, "Present"))
	assert.Equal(t, "2019", period(types.Experience{StartDate: "2019"}, "Present"))
	assert.Equal(t, "", period(types.Experience{}, "Present"))

	assert.Equal(t, "MSc in Physics", degree(types.Education{Degree: "MSc", Field: "Physics"}))
	assert.Equal(t, "MSc", degree(types.Education{Degree: "MSc"}))
	assert.Equal(t, "Physics", degree(types.Education{Field: "Physics"}))
}
