// Package extract pulls plain text out of uploaded resume files.
package extract

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// ErrUnsupported is returned for files that are neither PDF nor plain text.
var ErrUnsupported = errors.New("Please upload a PDF or TXT file")

// Text returns the text content of an uploaded file, chosen by extension.
func Text(filename string, data []byte) (text string, err error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = pdfText(data)
	case ".txt", ".md", ".markdown":
		if !utf8.Valid(data) {
			err = errors.Errorf("%s is not valid UTF-8 text", filename)
			return text, err
		}
		text = string(data)
	default:
		err = ErrUnsupported
		return text, err
	}
	if err != nil {
		return text, err
	}

	text = strings.TrimSpace(text)
	return text, err
}

// pdfText extracts text page by page. The reader panics on some malformed
// files, so a panic is reported as an error.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("failed to read PDF: %v", r)
		}
	}()

	var reader *pdf.Reader
	reader, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		err = errors.Wrap(err, "failed to open PDF")
		return text, err
	}

	var plain io.Reader
	plain, err = reader.GetPlainText()
	if err != nil {
		err = errors.Wrap(err, "failed to extract PDF text")
		return text, err
	}

	var buf bytes.Buffer
	_, err = buf.ReadFrom(plain)
	if err != nil {
		err = errors.Wrap(err, "failed to read PDF text")
		return text, err
	}

	text = buf.String()
	return text, err
}
