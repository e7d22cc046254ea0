// src/services/input.go
package services

import (
	"os"

	"github.com/username/ridecost/src/parsers"
	"github.com/username/ridecost/src/security/validation"
)

// openValidated opens path and checks its size and content before any parsing.
func openValidated(path string, maxInputBytes int64) (*os.File, os.FileInfo, error) {
	f, err := parsers.OpenInput(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if err := validation.ValidateSize(info, maxInputBytes); err != nil {
		f.Close()
		return nil, nil, err
	}
	if _, err := validation.ValidateTextContent(f); err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, info, nil
}
