// Package fileutil provides file name and path classification helpers.
package fileutil

import (
	"errors"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// MaxFilenameBytes matches the common filesystem limit for a single name.
const MaxFilenameBytes = 255

// ValidateExtension checks that the extension is safe for use in generated file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// SanitizeFilename reduces an attribute-supplied name to a safe base name.
// Directory components, control characters and leading dots are dropped, and
// the result is capped at MaxFilenameBytes without splitting a character.
// Returns "" when nothing usable remains.
//
// Examples:
//   - "chart.png" -> "chart.png"
//   - "../../etc/passwd" -> "passwd"
//   - "C:\\tmp\\logo.svg" -> "logo.svg"
//   - ".hidden" -> "hidden"
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" {
		return ""
	}

	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(strings.TrimLeft(name, ". "))

	if len(name) > MaxFilenameBytes {
		cut := MaxFilenameBytes
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	return name
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "image" -> false (name)
//   - "./image" -> true (relative path)
//   - "C:\windows\image" -> true (Windows)
//   - "sub/dir" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an absolute or protocol-relative web URL.
func IsURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//")
}

// IsDataURI returns true if the string is an RFC 2397 data URI.
func IsDataURI(s string) bool {
	return len(s) >= 5 && strings.EqualFold(s[:5], "data:")
}
