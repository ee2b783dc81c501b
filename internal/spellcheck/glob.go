package spellcheck

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Expand resolves patterns, which may use ** to match any depth, to a
// sorted, de-duplicated list of files. A pattern without meta characters is
// returned as is when it names an existing file.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, p := range patterns {
		if !doublestar.ValidatePathPattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", p, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
