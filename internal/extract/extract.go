package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	ErrEmptyDocument   = errors.New("empty document")
	ErrInvalidPDF      = errors.New("invalid pdf")
	ErrUnsupportedType = errors.New("unsupported document type")
)

// ExtractTextFromBytes extracts plain text from an uploaded résumé.
// PDF is parsed with github.com/ledongthuc/pdf and DOCX with github.com/nguyenthenguyen/docx.
func ExtractTextFromBytes(ctx context.Context, data []byte, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	switch mimeType := DetectMimeType(data, fileName); mimeType {
	case MimePDF:
		return ExtractPDF(ctx, data)
	case MimeDOCX:
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
}

// DetectMimeType sniffs the payload, trusting a .pdf/.docx extension only where the
// content is ambiguous or broken.
func DetectMimeType(data []byte, fileName string) string {
	detected := mimetype.Detect(data)
	ext := strings.ToLower(filepath.Ext(fileName))

	switch {
	case detected.Is(MimePDF):
		return MimePDF
	case detected.Is(MimeDOCX):
		return MimeDOCX
	case ext == ".pdf":
		// corrupted PDFs should fail as PDFs, not as an unknown type
		return MimePDF
	case ext == ".docx" && detected.Is("application/zip"):
		return MimeDOCX
	}
	return strings.Split(detected.String(), ";")[0]
}

// ExtractPDF returns the text of every page concatenated in page order.
// Pages without extractable text contribute an empty string.
func ExtractPDF(ctx context.Context, data []byte) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrInvalidPDF, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		b.WriteString(pageText(reader.Page(i)))
	}
	return b.String(), nil
}

func pageText(page pdf.Page) string {
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return stripDocxXML(doc.Editable().GetContent()), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
