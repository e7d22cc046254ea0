// src/parsers/input.go
package parsers

import (
	"fmt"
	"os"

	"github.com/username/ridecost/src/models"
)

// OpenInput opens path for reading. Failures match both models.ErrNotFound and
// the underlying fs error. Paths that are not regular files, such as
// directories, are reported as not found.
func OpenInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrNotFound, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", models.ErrNotFound, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is not a regular file", models.ErrNotFound, path)
	}
	return f, nil
}

func fieldError(field string, err error) *models.FormatError {
	return &models.FormatError{Field: field, Err: err}
}
