package rendering

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/cv-builder/internal/types"
)

//go:embed templates/cv.tex.tmpl
var defaultLaTeXTemplate string

// LaTeXData represents the data structure passed to the LaTeX template.
// Every string is already escaped.
type LaTeXData struct {
	Name      string
	Headline  string
	Contact   []string
	Summary   string
	Companies []CompanySection
	Education []EducationLine
	Skills    string
	Languages []string
	Custom    []CustomBlock
}

// CompanySection represents a company with one or more roles
type CompanySection struct {
	Company string
	Roles   []RoleSection
}

// RoleSection represents a role within a company with merged date ranges
type RoleSection struct {
	Role       string
	DateRanges string // e.g., "2019 -- 2021, 2021 -- Present"
	Bullets    []string
}

// EducationLine is one degree in the LaTeX output.
type EducationLine struct {
	School string
	Degree string
	Dates  string
	Score  string
}

// CustomBlock is a user-defined section in the LaTeX output.
type CustomBlock struct {
	Title     string
	List      bool
	Items     []string
	Paragraph string
}

// dateRange represents a single date range for sorting
type dateRange struct {
	StartDate string
	EndDate   string
	Current   bool
}

// RenderLaTeX renders doc with the built-in LaTeX template.
func RenderLaTeX(doc types.Document) (string, error) {
	tmpl, err := newLaTeXTemplate("cv.tex", defaultLaTeXTemplate)
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, doc)
}

// RenderLaTeXFile renders doc with the LaTeX template stored at templatePath.
func RenderLaTeXFile(doc types.Document, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, doc)
}

func executeLaTeX(tmpl *template.Template, doc types.Document) (string, error) {
	var result strings.Builder
	if err := tmpl.Execute(&result, buildTemplateData(doc)); err != nil {
		return "", &TemplateError{
			Template: tmpl.Name(),
			Message:  "failed to execute template",
			Cause:    err,
		}
	}
	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}
	return newLaTeXTemplate(templatePath, string(content))
}

func newLaTeXTemplate(name, content string) (*template.Template, error) {
	// LaTeX is brace-heavy, so actions use angle delimiters.
	tmpl, err := template.New(name).Delims("<<", ">>").Funcs(template.FuncMap{
		"escape": EscapeLaTeX,
		"join":   strings.Join,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Template: name,
			Message:  "failed to parse template",
			Cause:    err,
		}
	}
	return tmpl, nil
}

// buildTemplateData constructs the escaped template data from a document
func buildTemplateData(doc types.Document) *LaTeXData {
	p := doc.Profile
	data := &LaTeXData{
		Name:      EscapeLaTeX(p.FullName),
		Headline:  EscapeLaTeX(p.Location),
		Summary:   EscapeLaTeX(p.Summary),
		Companies: groupByCompanyAndRole(doc.Experience),
	}

	for _, c := range []string{p.Email, p.Phone, p.Website, p.LinkedIn} {
		if c != "" {
			data.Contact = append(data.Contact, EscapeLaTeX(c))
		}
	}

	for _, e := range doc.Education {
		line := EducationLine{
			School: EscapeLaTeX(e.School),
			Degree: EscapeLaTeX(degree(e)),
			Dates:  formatRange(dateRange{StartDate: e.StartDate, EndDate: e.EndDate}),
		}
		if e.Score != nil {
			line.Score = EscapeLaTeX(*e.Score)
		}
		data.Education = append(data.Education, line)
	}

	names := make([]string, 0, len(doc.Skills))
	for _, s := range doc.Skills {
		names = append(names, EscapeLaTeX(s.Name))
	}
	data.Skills = strings.Join(names, ", ")

	for _, l := range doc.Languages {
		entry := EscapeLaTeX(l.Name)
		if l.Proficiency != "" {
			entry += " (" + EscapeLaTeX(l.Proficiency) + ")"
		}
		data.Languages = append(data.Languages, entry)
	}

	for _, c := range doc.Custom {
		block := CustomBlock{
			Title:     EscapeLaTeX(c.Title),
			List:      c.Type == types.SectionList,
			Paragraph: EscapeLaTeX(c.Description),
		}
		for _, item := range c.Items {
			block.Items = append(block.Items, EscapeLaTeX(item))
		}
		data.Custom = append(data.Custom, block)
	}

	return data
}

// roleKey is used for grouping entries by company and role
type roleKey struct {
	Company string
	Role    string
}

// groupByCompanyAndRole groups experience entries by Company, then by
// Role, merging date ranges. Companies keep the order of their first entry.
func groupByCompanyAndRole(experience []types.Experience) []CompanySection {
	if len(experience) == 0 {
		return []CompanySection{}
	}

	roleRanges := make(map[roleKey][]dateRange)
	roleBullets := make(map[roleKey][]string)
	companyOrder := []string{}
	companyRoleOrder := make(map[string][]string)
	seenCompanies := make(map[string]bool)
	seenRoles := make(map[roleKey]bool)

	for _, exp := range experience {
		key := roleKey{Company: exp.Company, Role: exp.Position}

		if !seenCompanies[exp.Company] {
			seenCompanies[exp.Company] = true
			companyOrder = append(companyOrder, exp.Company)
		}
		if !seenRoles[key] {
			seenRoles[key] = true
			companyRoleOrder[exp.Company] = append(companyRoleOrder[exp.Company], exp.Position)
		}

		roleRanges[key] = append(roleRanges[key], dateRange{
			StartDate: exp.StartDate,
			EndDate:   exp.EndDate,
			Current:   exp.Current,
		})
		for _, line := range descriptionLines(exp.Description) {
			roleBullets[key] = append(roleBullets[key], EscapeLaTeX(line))
		}
	}

	companies := make([]CompanySection, 0, len(companyOrder))
	for _, companyName := range companyOrder {
		roles := make([]RoleSection, 0, len(companyRoleOrder[companyName]))
		for _, roleName := range companyRoleOrder[companyName] {
			key := roleKey{Company: companyName, Role: roleName}
			roles = append(roles, RoleSection{
				Role:       EscapeLaTeX(roleName),
				DateRanges: mergeDateRanges(roleRanges[key]),
				Bullets:    roleBullets[key],
			})
		}
		companies = append(companies, CompanySection{
			Company: EscapeLaTeX(companyName),
			Roles:   roles,
		})
	}
	return companies
}

// mergeDateRanges drops duplicate ranges and joins the rest, in input order,
// with commas.
func mergeDateRanges(ranges []dateRange) string {
	seen := make(map[dateRange]bool)
	parts := []string{}
	for _, r := range ranges {
		if seen[r] {
			continue
		}
		seen[r] = true
		if s := formatRange(r); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func formatRange(r dateRange) string {
	end := r.EndDate
	if r.Current {
		end = "Present"
	}
	switch {
	case r.StartDate == "" && end == "":
		return ""
	case r.StartDate == "":
		return EscapeLaTeX(end)
	case end == "":
		return EscapeLaTeX(r.StartDate)
	}
	return EscapeLaTeX(r.StartDate) + " -- " + EscapeLaTeX(end)
}
