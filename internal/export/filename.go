package export

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename derives the download name of a CV from its owner's name:
// whitespace runs become underscores and "_CV.pdf" is appended.
// A blank name yields "CV.pdf".
func Filename(fullName string) string {
	name := strings.NewReplacer("/", "", `\`, "", "\x00", "").Replace(fullName)
	if strings.TrimSpace(name) == "" {
		return "CV.pdf"
	}
	return whitespaceRun.ReplaceAllString(name, "_") + "_CV.pdf"
}
