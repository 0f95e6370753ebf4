package util

import (
	"errors"
	"path"
	"strings"
)

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName reduces an uploaded name to its base name. Names that walk up a directory
// are rejected; dots inside a name such as "cv..final.pdf" are fine.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	for _, segment := range strings.Split(s, "/") {
		if strings.TrimSpace(segment) == ".." {
			return "", ErrInvalidFileName
		}
	}
	s = strings.TrimSpace(path.Base(s))
	if s == "" || s == "." || s == "/" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
