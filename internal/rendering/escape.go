package rendering

import "strings"

// EscapeLaTeX escapes characters that LaTeX treats specially.
// Special characters: \ { } $ & % # ^ _ ~ < > and the bullet sign.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		case '<':
			result.WriteString(`\textless{}`)
		case '>':
			result.WriteString(`\textgreater{}`)
		case '•':
			result.WriteString(`\textbullet{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// descriptionLines splits a free-text description into bullet lines,
// dropping blank lines and any leading bullet marker.
func descriptionLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "•-*")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
