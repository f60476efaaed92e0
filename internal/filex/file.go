// Package filex holds filesystem helpers for downloaded artifacts.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// EnsureDir creates dir and its parents when missing. A relative dir is
// resolved against the working directory; the absolute path is returned.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// SafeFileName turns an article title into something usable as a file
// name: path separators and control characters become underscores and
// surrounding whitespace is dropped. An empty result becomes "untitled".
func SafeFileName(name string) string {
	name = strings.TrimSpace(name)
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			return '_'
		case unicode.IsControl(r):
			return '_'
		}
		return r
	}, name)
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return "untitled"
	}
	return cleaned
}
