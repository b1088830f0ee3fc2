package archive

import (
	"path"
	"path/filepath"
	"strings"
)

// Matcher decides whether a relative path is excluded from an archive.
// Each glob pattern is matched against the full slash-separated relative path
// and against every individual path segment, so a bare "node_modules" excludes
// the directory at any depth and "*.zip" excludes by extension anywhere.
type Matcher struct {
	patterns []string
}

// NewMatcher creates a matcher for the given glob patterns. Patterns are
// validated at configuration load; malformed ones simply never match here.
func NewMatcher(patterns []string) *Matcher {
	return &Matcher{patterns: patterns}
}

// Excluded reports whether rel matches any exclusion pattern.
func (m *Matcher) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	segments := strings.Split(rel, "/")
	for _, pattern := range m.patterns {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		for _, segment := range segments {
			if ok, _ := path.Match(pattern, segment); ok {
				return true
			}
		}
	}
	return false
}
