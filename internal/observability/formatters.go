// Package observability provides logging setup and formatted terminal
// output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cv-builder/internal/editor"
	"github.com/jonathan/cv-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// PrintDocument outputs a human-readable overview of a CV document.
func (p *Printer) PrintDocument(doc *types.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	prof := doc.Profile
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(prof.FullName)))
	sb.WriteString(fmt.Sprintf("Headline: %s\n", orDash(prof.Location)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(prof.Email)))
	sb.WriteString(fmt.Sprintf("Theme:    %s\n", doc.ThemeColor))
	if prof.Image != nil {
		sb.WriteString("Photo:    yes\n")
	}
	sb.WriteString("\n")

	if len(doc.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(doc.Experience)))
		count := min(len(doc.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := doc.Experience[i]
			end := exp.EndDate
			if exp.Current {
				end = "Present"
			}
			sb.WriteString(fmt.Sprintf("  • %s @ %s (%s - %s)\n", exp.Position, exp.Company, exp.StartDate, end))
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(doc.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education (%d):\n", len(doc.Education)))
		for _, edu := range doc.Education {
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", edu.Degree, edu.School))
		}
		sb.WriteString("\n")
	}

	if len(doc.Skills) > 0 {
		names := make([]string, 0, len(doc.Skills))
		for _, s := range doc.Skills {
			names = append(names, fmt.Sprintf("%s %s", s.Name, levelBar(s.Level)))
		}
		sb.WriteString("Skills:\n")
		for _, n := range names {
			sb.WriteString(fmt.Sprintf("  %s\n", n))
		}
		sb.WriteString("\n")
	}

	if len(doc.Languages) > 0 {
		langs := make([]string, 0, len(doc.Languages))
		for _, l := range doc.Languages {
			langs = append(langs, fmt.Sprintf("%s (%s)", l.Name, l.Proficiency))
		}
		sb.WriteString(fmt.Sprintf("Languages: %s\n", strings.Join(langs, ", ")))
	}

	for _, c := range doc.Custom {
		n := len(c.Items)
		if c.Type == types.SectionParagraph {
			sb.WriteString(fmt.Sprintf("Section:   %s (paragraph)\n", c.Title))
			continue
		}
		sb.WriteString(fmt.Sprintf("Section:   %s (%d items)\n", c.Title, n))
	}

	p.printBox("CV DOCUMENT", strings.TrimRight(sb.String(), "\n"))
}

// PrintSessionState outputs the undo/redo position of an editing session.
func (p *Printer) PrintSessionState(state editor.State) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session:  %s\n", state.ID))
	sb.WriteString(fmt.Sprintf("Template: %s\n", state.Template))
	sb.WriteString(fmt.Sprintf("Undo:     %d step(s)%s\n", state.UndoDepth, check(state.CanUndo)))
	sb.WriteString(fmt.Sprintf("Redo:     %d step(s)%s", state.RedoDepth, check(state.CanRedo)))
	p.printBox("EDIT HISTORY", sb.String())
}

// PrintTemplates lists the available layouts and preset colours.
func (p *Printer) PrintTemplates() {
	var sb strings.Builder
	sb.WriteString("Layouts:\n")
	for _, t := range types.Templates() {
		marker := " "
		if t.ID == types.DefaultTemplate {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf(" %s %-8s %s\n", marker, t.ID, t.Name))
	}
	sb.WriteString("\nColours:\n")
	for _, c := range types.ThemeColors() {
		sb.WriteString(fmt.Sprintf("   %-8s %s\n", c.Name, c.Value))
	}
	p.printBox("TEMPLATES", strings.TrimRight(sb.String(), "\n"))
}

func levelBar(level int) string {
	level = max(0, min(level, 5))
	return strings.Repeat("●", level) + strings.Repeat("○", 5-level)
}

func check(ok bool) string {
	if ok {
		return " ✓"
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
