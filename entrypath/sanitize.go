package entrypath

import (
	"bytes"
	"strings"
)

// Sanitize removes "/../", "/./" and duplicate-slash segments from a relative
// entry path and strips any leading "/", "./" or "../".
//
// The result never starts with "/", "./" or "../", never contains "/../",
// "/./" or "//", and is never "..". Sanitize is idempotent and never fails.
func Sanitize(entryPath string) string {
	path := entryPath
	for {
		next := sanitizePass(path)
		if next == path {
			return next
		}
		path = next
	}
}

// SanitizeAll sanitizes every path in paths.
func SanitizeAll(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = Sanitize(p)
	}
	return out
}

// sanitizePass runs the four normalization passes once, each over the whole
// string. A pass that changes its input always shortens it.
func sanitizePass(path string) string {
	path = collapseParents(path)
	path = replaceAll(path, "/./")
	path = replaceAll(path, "//")
	return stripLeading(path)
}

// collapseParents removes every "/../" together with the segment before it.
func collapseParents(path string) string {
	idx := strings.Index(path, "/../")
	if idx < 0 {
		return path
	}
	buf := make([]byte, 0, len(path))
	src := 0
	for {
		buf = append(buf, path[src:idx]...)
		// Drop the preceding segment. Without a '/' it runs to the start.
		buf = buf[:max(bytes.LastIndexByte(buf, '/'), 0)]

		// Resume at the '/' closing the occurrence, so "/../../" collapses twice.
		src = idx + 3
		next := strings.Index(path[src:], "/../")
		if next < 0 {
			return string(append(buf, path[src:]...))
		}
		idx = src + next
	}
}

// replaceAll replaces each occurrence of sep with its trailing '/'. The search
// resumes at that '/', so overlapping occurrences ("/././", "///") are caught.
func replaceAll(path, sep string) string {
	idx := strings.Index(path, sep)
	if idx < 0 {
		return path
	}
	buf := make([]byte, 0, len(path))
	src := 0
	for {
		buf = append(buf, path[src:idx]...)
		src = idx + len(sep) - 1
		next := strings.Index(path[src:], sep)
		if next < 0 {
			return string(append(buf, path[src:]...))
		}
		idx = src + next
	}
}

func stripLeading(path string) string {
	for {
		switch {
		case strings.HasPrefix(path, "./"):
			path = path[2:]
		case strings.HasPrefix(path, "../"):
			path = path[3:]
		case strings.HasPrefix(path, "/"):
			path = path[1:]
		case path == "." || path == "..":
			return ""
		default:
			return path
		}
	}
}
