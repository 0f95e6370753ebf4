package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoDocumentPart is returned when a package has no word/document.xml.
var ErrNoDocumentPart = errors.New("docx has no word/document.xml")

// Paragraph is one block of a rendered document.
type Paragraph struct {
	Style string
	Text  string
}

// Paragraphs reads the paragraphs of a DOCX package in document order.
func Paragraphs(docx []byte) ([]Paragraph, error) {
	reader, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}

	for _, file := range reader.File {
		if normalizeZipName(file.Name) != "word/document.xml" {
			continue
		}
		content, err := readZipFile(file)
		if err != nil {
			return nil, err
		}
		return parseParagraphs(content)
	}
	return nil, ErrNoDocumentPart
}

func parseParagraphs(content []byte) ([]Paragraph, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))
	var (
		out     []Paragraph
		current *Paragraph
		text    strings.Builder
		inText  bool
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document.xml parse failed: %w", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch {
			case isWmlElement(t.Name, "p"):
				current = &Paragraph{}
				text.Reset()
			case isWmlElement(t.Name, "pStyle") && current != nil:
				current.Style = attrValue(t.Attr, "val")
			case isWmlElement(t.Name, "t"):
				inText = true
			}
		case xml.CharData:
			if inText && current != nil {
				text.Write(t)
			}
		case xml.EndElement:
			switch {
			case isWmlElement(t.Name, "t"):
				inText = false
			case isWmlElement(t.Name, "p") && current != nil:
				current.Text = text.String()
				out = append(out, *current)
				current = nil
			}
		}
	}
	return out, nil
}

func attrValue(attrs []xml.Attr, local string) string {
	for _, attr := range attrs {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

func normalizeZipName(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}

func validateDocumentXMLStructure(xmlText string) error {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	var stack []xml.Name
	type runState struct {
		seenText bool
	}
	var runs []runState

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("document.xml parse failed: %w\n%s", err, firstLines(xmlText, 5))
		}
		switch t := token.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name)
			if isWmlElement(t.Name, "p") {
				for i := len(stack) - 2; i >= 0; i-- {
					if isWmlElement(stack[i], "p") {
						return fmt.Errorf("document.xml has nested <w:p>\n%s", firstLines(xmlText, 5))
					}
				}
			}
			if isWmlElement(t.Name, "r") {
				runs = append(runs, runState{})
			}
			if isWmlElement(t.Name, "t") && len(runs) > 0 {
				runs[len(runs)-1].seenText = true
			}
			if isWmlElement(t.Name, "rPr") && len(runs) > 0 && runs[len(runs)-1].seenText {
				return fmt.Errorf("document.xml has <w:rPr> after <w:t> in a run\n%s", firstLines(xmlText, 5))
			}
		case xml.EndElement:
			if isWmlElement(t.Name, "r") && len(runs) > 0 {
				runs = runs[:len(runs)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return nil
}

func isWmlElement(name xml.Name, local string) bool {
	return name.Local == local && name.Space == wmlNamespace
}

func firstLines(text string, count int) string {
	if count <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > count {
		lines = lines[:count]
	}
	return strings.Join(lines, "\n")
}
