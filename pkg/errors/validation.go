package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxPersonIDLength bounds identifiers; national ID numbers are far shorter.
const maxPersonIDLength = 64

// ValidatePersonID checks that id is usable as a node identifier and as a
// Graphviz node name:
//   - not empty
//   - at most 64 characters
//   - no whitespace or control characters
//   - no double quotes or backslashes
func ValidatePersonID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRecord, "person ID cannot be empty")
	}
	if len(id) > maxPersonIDLength {
		return New(ErrCodeInvalidRecord, "person ID too long (max %d characters)", maxPersonIDLength)
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidRecord, "person ID %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, "\"\\") {
		return New(ErrCodeInvalidRecord, "person ID %q contains quotes or backslashes", id)
	}
	return nil
}

// ValidatePhotoPath checks a photo reference from a dataset record. Photos
// must live next to the dataset, so the path has to be relative and must not
// climb out of the dataset directory. An empty path is allowed.
func ValidatePhotoPath(path string) error {
	if path == "" {
		return nil
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "photo path contains control characters")
		}
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "photo path %q must be relative to the dataset", path)
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return New(ErrCodeInvalidPath, "photo path %q escapes the dataset directory", path)
	}
	return nil
}
