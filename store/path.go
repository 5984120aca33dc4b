package store

import (
	"path"
	"strings"
)

// SplitPath splits a path into its components.
// Leading and trailing slashes are handled, empty components are removed.
//
// Examples:
//   - "/" -> []string{}
//   - "/foo" -> []string{"foo"}
//   - "/foo//bar/" -> []string{"foo", "bar"}
func SplitPath(p string) []string {
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// CleanPath normalizes a path, ensuring it starts with "/" and has no trailing
// or repeated slashes.
func CleanPath(p string) string {
	parts := SplitPath(p)
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// JoinPath joins a group path and a child name into an absolute path.
func JoinPath(parent, name string) string {
	return CleanPath(path.Join(CleanPath(parent), name))
}

// BaseName returns the last component of a path, or "/" for the root.
func BaseName(p string) string {
	parts := SplitPath(p)
	if len(parts) == 0 {
		return "/"
	}
	return parts[len(parts)-1]
}
