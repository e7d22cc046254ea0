package validation

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"unicode"

	"github.com/username/ridecost/src/logger"
	"github.com/username/ridecost/src/models"
)

// allowedDetectedTypes are the sniffed non-text/* content types accepted for
// portfolio and ride files. Every text/* type is accepted as well.
var allowedDetectedTypes = map[string]bool{
	"application/csv":          true,
	"application/octet-stream": false,
}

func isAllowedContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "text/") || allowedDetectedTypes[contentType]
}

// ValidateSize rejects files larger than maxBytes. A non-positive maxBytes disables the check.
func ValidateSize(info os.FileInfo, maxBytes int64) error {
	if maxBytes > 0 && info.Size() > maxBytes {
		logger.L.Warn("Input file too large", "name", info.Name(), "size", info.Size(), "limit", maxBytes)
		return fmt.Errorf("%w: %s is %d bytes, limit %d", models.ErrInputTooLarge, info.Name(), info.Size(), maxBytes)
	}
	return nil
}

// ValidateTextContent sniffs the first 512 bytes of file and rejects anything
// that is not text. The read position is reset to the start.
func ValidateTextContent(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 512)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	detectedContentType := http.DetectContentType(buffer[:n])
	detectedContentType = strings.ToLower(strings.Split(detectedContentType, ";")[0])

	if !isAllowedContentType(detectedContentType) {
		logger.L.Warn("Disallowed detected file content type", "detectedContentType", detectedContentType)
		return detectedContentType, fmt.Errorf("%w: detected content type %q", models.ErrNotText, detectedContentType)
	}

	logger.L.Debug("File content type validated", "detectedContentType", detectedContentType)
	return detectedContentType, nil
}

// StripUnprintable removes non-printable characters, keeping space, tab,
// newline and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}
