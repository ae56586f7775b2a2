// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// allowedExtensions is the upload allow-list. Anything else is rejected
// before a single byte reaches the content store.
var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"mp4":  {},
	"ogg":  {},
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	for _, r := range username {
		if unicode.IsSpace(r) {
			return fmt.Errorf("Username cannot contain spaces!")
		}
	}
	return nil
}

// AllowedExtension reports whether the filename carries an extension from the
// upload allow-list. Filenames without any extension are rejected.
func AllowedExtension(filename string) bool {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filename[idx+1:])]
	return ok
}

// SanitizeFilename reduces an untrusted upload filename to a safe basename:
// path separators become word breaks, unsafe characters are dropped, and
// leading/trailing dots and underscores are stripped so the result can never
// escape the content store.
func SanitizeFilename(filename string) string {
	s := strings.NewReplacer("/", " ", "\\", " ").Replace(filename)
	s = strings.Join(strings.Fields(s), "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	return strings.Trim(s, "._")
}
