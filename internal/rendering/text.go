package rendering

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockElements start a new line in plain-text output.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "div": true,
	"footer": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"header": true, "li": true, "main": true, "p": true,
	"section": true, "ul": true, "ol": true, "br": true,
}

// PlainText extracts readable text from rendered HTML, one block per line.
// List items are prefixed with "- ".
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &RenderError{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("head, script, style, noscript, img").Remove()

	var b strings.Builder
	walkText(doc.Find("body"), &b)
	return cleanLines(b.String()), nil
}

func walkText(sel *goquery.Selection, b *strings.Builder) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		name := goquery.NodeName(node)
		if name == "#text" {
			b.WriteString(collapseSpaces(node.Text()))
			return
		}

		block := blockElements[name]
		if block {
			b.WriteByte('\n')
		}
		if name == "li" {
			b.WriteString("- ")
		}
		walkText(node, b)
		if block {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	})
}

// collapseSpaces squeezes runs of spaces and tabs but keeps line breaks,
// so multi-line descriptions survive.
func collapseSpaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}

// cleanLines trims every line and drops blank ones.
func cleanLines(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
