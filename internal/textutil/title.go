package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// TitleCase converts the string to English title casing.
func TitleCase(value string) string {
	return titleCaser.String(strings.TrimSpace(value))
}
