// Package extract renders uploaded statement and specification documents
// into plain text for the downstream parsers.
package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text converts a source document into plain text. PDFs are extracted page
// by page with line structure preserved; a "PK" zip container of
// pre-extracted .txt files is read in name order; anything else is treated
// as UTF-8 text already.
func Text(data []byte) (string, error) {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return pdfText(data)
	}
	if bytes.HasPrefix(data, []byte("PK")) {
		return zipText(data)
	}
	return string(data), nil
}

func pdfText(data []byte) (text string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// zipText reads pre-extracted page text from a zip container, one .txt file
// per page, joined in lexical name order.
func zipText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening container: %w", err)
	}

	var names []string
	for _, f := range zr.File {
		if strings.HasSuffix(strings.ToLower(f.Name), ".txt") {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("container has no .txt entries")
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		f, err := zr.Open(name)
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", name, err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", name, err)
		}
		sb.Write(content)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}
