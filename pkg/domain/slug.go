package domain

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[\s-]+`)
)

// Slugify derives a filesystem-safe identifier from a template name:
// lowercase, non-word characters stripped, whitespace and hyphen runs
// collapsed to a single underscore. An empty result falls back to
// "template" so every name yields a usable identifier.
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "")
	slug = strings.Trim(slugCollapse.ReplaceAllString(slug, "_"), "_")
	if slug == "" {
		return "template"
	}
	return slug
}
