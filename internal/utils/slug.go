package utils

import (
	"regexp"
	"strings"
)

var (
	nonWordRe   = regexp.MustCompile(`[^a-z0-9]+`)
	separatorRe = regexp.MustCompile(`-{2,}`)
)

// Slugify normalise un titre en slug URL : minuscules, caractères
// non alphanumériques remplacés par des tirets, séparateurs fusionnés.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonWordRe.ReplaceAllString(slug, "-")
	slug = separatorRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "post"
	}
	return slug
}
