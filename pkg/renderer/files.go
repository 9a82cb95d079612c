package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
)

// WriteMarkdown writes markdown content to a file.
func WriteMarkdown(content, outputPath string) (err error) {
	err = writeFile([]byte(content), outputPath)
	if err != nil {
		err = errors.Wrapf(err, "failed to write markdown file: %s", outputPath)
		return err
	}
	return err
}

// WritePDF writes rendered PDF bytes to a file.
func WritePDF(data []byte, outputPath string) (err error) {
	err = writeFile(data, outputPath)
	if err != nil {
		err = errors.Wrapf(err, "failed to write PDF file: %s", outputPath)
		return err
	}
	return err
}

func writeFile(data []byte, outputPath string) (err error) {
	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, data, 0600)
	return err
}

// CleanupMarkdown removes markdown files after PDF generation.
func CleanupMarkdown(paths ...string) (err error) {
	for _, path := range paths {
		err = os.Remove(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove markdown file: %s", path)
			return err
		}
	}
	return err
}

// Filename returns the download name for an exported document of the given
// kind. Characters other than letters, digits, '-' and '_' become '-'.
func Filename(kind string, now time.Time) (name string) {
	kind = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, strings.TrimSpace(kind))
	if kind == "" {
		kind = "document"
	}
	name = fmt.Sprintf("%s-%d.pdf", kind, now.UnixMilli())
	return name
}
