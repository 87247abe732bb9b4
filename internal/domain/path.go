package domain

import "strings"

// PathSeparator joins segments of a normalized property path
const PathSeparator = "/"

// SplitPath splits a property path into segments. Paths containing '/' are
// split on '/', otherwise on '.'. Empty segments (leading or doubled
// separators) are dropped.
func SplitPath(path string) []string {
	path = strings.TrimSpace(path)
	sep := "."
	if strings.Contains(path, "/") {
		sep = "/"
	}
	raw := strings.Split(path, sep)
	segments := raw[:0]
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// NormalizePath returns the canonical '/'-joined form of path, so that
// "a.b" and "a/b" share a cache key.
func NormalizePath(path string) string {
	return strings.Join(SplitPath(path), PathSeparator)
}

// JoinPath appends name to a parent path.
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + PathSeparator + name
}
