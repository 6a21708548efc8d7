package pdftext

import (
	"bytes"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extract returns the plain text of a PDF document.
func Extract(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	txt, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, txt); err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}
