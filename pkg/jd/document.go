package jd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// ReadDocument returns the plain text of a local file. PDF files have their
// text layer extracted, HTML files are reduced to their main text, and
// anything else is read as-is.
func ReadDocument(path string) (text string, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = readPDF(path)
	case ".html", ".htm":
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to read file: %s", path)
			return text, err
		}
		text, err = ExtractText(string(data))
	default:
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to read file: %s", path)
			return text, err
		}
		text = string(data)
	}
	if err != nil {
		return text, err
	}

	if strings.TrimSpace(text) == "" {
		err = errors.New("file is empty")
		return text, err
	}

	return text, err
}

func readPDF(path string) (text string, err error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open pdf: %s", path)
		return text, err
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		err = errors.Wrapf(err, "failed to extract pdf text: %s", path)
		return text, err
	}

	var buf bytes.Buffer
	_, err = buf.ReadFrom(plain)
	if err != nil {
		err = errors.Wrapf(err, "failed to read pdf text: %s", path)
		return text, err
	}

	text = cleanLines(buf.String())
	return text, err
}
