package entrypath

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyPath is returned by Join when an entry sanitizes to nothing.
	ErrEmptyPath = errors.New("entrypath: empty entry path")
	// ErrEscapesRoot is returned by Join when an entry would resolve outside root.
	ErrEscapesRoot = errors.New("entrypath: entry escapes root")
)

// Join sanitizes entry and joins it under root using the host separator.
//
// Sanitizing alone never yields a ".." segment that escapes, but host paths
// have their own hazards (drive letters, reserved names on Windows), so the
// result is also checked with filepath.IsLocal.
func Join(root, entry string) (string, error) {
	clean := Sanitize(entry)
	if clean == "" {
		return "", ErrEmptyPath
	}
	local := filepath.FromSlash(clean)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %q", ErrEscapesRoot, entry)
	}
	return filepath.Join(root, local), nil
}

// IsClassfile reports whether path has a ".class" extension, ignoring case,
// and a non-empty name before it.
func IsClassfile(path string) bool {
	const ext = ".class"
	n := len(path)
	return n > len(ext) && strings.EqualFold(path[n-len(ext):], ext)
}
