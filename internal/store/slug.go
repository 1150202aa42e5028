package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the value and collapses runs of non-alphanumerics into
// single hyphens. Capped at 190 characters to stay under the index limit.
func Slugify(value string) string {
	slug := strings.ToLower(strings.TrimSpace(value))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 190 {
		slug = strings.Trim(slug[:190], "-")
	}
	return slug
}

// uniqueSlug probes the given table for the base slug and appends a numeric
// suffix until it finds a free one. excludeID skips the row being updated.
func uniqueSlug(db *sql.DB, table, base string, excludeID int64) (string, error) {
	if base == "" {
		base = "untitled"
	}
	slug := base
	for n := 2; ; n++ {
		var count int
		err := db.QueryRow(
			`SELECT COUNT(*) FROM `+table+` WHERE slug = ? AND id != ?`,
			slug, excludeID,
		).Scan(&count)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
