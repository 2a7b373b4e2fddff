package watcher

import (
	"path/filepath"
	"strings"

	"dateprefix/internal/config"
)

// Filter decides which filesystem events are worth processing.
type Filter struct {
	patterns []string
}

// NewFilter creates a Filter from glob patterns matched against basenames.
func NewFilter(patterns []string) *Filter {
	return &Filter{patterns: patterns}
}

// Ignore reports whether the path should be skipped: hidden files, the
// tool's own state directory, and anything matching an ignore pattern
// (typically in-progress downloads).
func (f *Filter) Ignore(path string) bool {
	name := filepath.Base(path)

	if strings.HasPrefix(name, ".") {
		return true
	}
	if strings.Contains(path, string(filepath.Separator)+config.StateDirName+string(filepath.Separator)) {
		return true
	}
	for _, pattern := range f.patterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
