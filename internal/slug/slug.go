// Package slug derives URL-safe identifiers from document titles and
// picks collision-free file names for them.
package slug

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	invalidRe    = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRunRe  = regexp.MustCompile(`-{2,}`)
)

// Slugify lowers the title, turns whitespace runs into single hyphens,
// drops everything outside [a-z0-9-], collapses hyphen runs, and trims
// the edges. A title that slugs to nothing becomes "untitled".
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = invalidRe.ReplaceAllString(s, "")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// UniquePath returns a file path for slug inside dir that does not
// collide with an existing file, probing slug-2, slug-3, and so on.
// Not safe against concurrent writers in the same directory.
func UniquePath(dir, slug, ext string) string {
	candidate := filepath.Join(dir, slug+ext)
	for n := 2; ; n++ {
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", slug, n, ext))
	}
}
