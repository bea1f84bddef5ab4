package task

import (
	"regexp"
	"strings"
)

const (
	maxSlugLength = 50
	shortIDLength = 8
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slug converts a title to a filesystem-friendly slug.
func Slug(title string) string {
	slug := strings.ToLower(title)
	slug = nonAlphanumeric.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLength {
		truncated := slug[:maxSlugLength]
		// Only trim to last hyphen if we cut mid-word.
		if slug[maxSlugLength] != '-' {
			if idx := strings.LastIndex(truncated, "-"); idx > 0 {
				truncated = truncated[:idx]
			}
		}
		slug = strings.TrimRight(truncated, "-")
	}

	if slug == "" {
		slug = "task"
	}
	return slug
}

// Filename returns the export filename for t: the first characters of
// its id followed by the title slug, e.g. "3f2a9c1e-write-report.md".
func Filename(t *Task) string {
	id := strings.ReplaceAll(t.ID(), "-", "")
	if len(id) > shortIDLength {
		id = id[:shortIDLength]
	}
	return id + "-" + Slug(t.Title()) + ".md"
}
