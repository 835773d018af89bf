package documents

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// UnsupportedFormatError marks input the pipeline cannot handle at all, as
// opposed to a transient extraction failure. The HTTP boundary maps it to a
// validation error.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Extension)
}

// ExtractText converts an uploaded file to plain text based on its
// extension. Supported: pdf, docx, doc, txt.
func ExtractText(filename string, content []byte) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")

	switch ext {
	case "pdf":
		return extractPDF(content)
	case "docx", "doc":
		return extractDOCX(content)
	case "txt":
		return extractTXT(content)
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}
}

func extractPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("error extracting PDF: %w", err)
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("error extracting PDF text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plainText); err != nil {
		return "", fmt.Errorf("error reading PDF text: %w", err)
	}
	return strings.TrimSpace(sb.String()), nil
}

// extractDOCX reads word/document.xml out of the docx zip container and
// concatenates the text runs, one line per paragraph.
func extractDOCX(content []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("error extracting DOCX: %w", err)
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("error extracting DOCX: document.xml not found")
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("error extracting DOCX: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var sb strings.Builder
	inTextRun := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("error extracting DOCX: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inTextRun = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inTextRun {
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// extractTXT decodes as UTF-8, falling back to Latin-1 where every byte is
// a valid code point.
func extractTXT(content []byte) (string, error) {
	if utf8.Valid(content) {
		return strings.TrimSpace(string(content)), nil
	}

	runes := make([]rune, len(content))
	for i, b := range content {
		runes[i] = rune(b)
	}
	return strings.TrimSpace(string(runes)), nil
}
