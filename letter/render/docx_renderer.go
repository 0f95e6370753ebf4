package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// MimeDOCX is the content type of every rendered letter.
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	// DefaultTitle heads a letter rendered without an explicit title.
	DefaultTitle = "Cover Letter"

	wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Entries carry this timestamp so identical input renders identical bytes.
var fixedModTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// RenderLetter renders a title paragraph followed by one paragraph per non-blank line of text
// into a DOCX byte slice.
func RenderLetter(title, text string) ([]byte, error) {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	documentXML := renderDocumentXML(title, LetterLines(text))
	if err := validateDocumentXMLStructure(documentXML); err != nil {
		return nil, err
	}

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/document.xml", documentXML},
		{"word/styles.xml", renderStylesXML()},
		{"word/_rels/document.xml.rels", documentRelsXML},
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	for _, part := range parts {
		if err := writeZipFile(writer, part.name, []byte(part.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

// LetterLines splits text into the paragraphs RenderLetter emits. Whitespace-only lines are
// dropped; kept lines are returned untrimmed apart from a trailing carriage return.
func LetterLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func writeZipFile(writer *zip.Writer, name string, content []byte) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: fixedModTime,
	}
	dst, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = dst.Write(content)
	return err
}

func renderDocumentXML(title string, lines []string) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="` + wmlNamespace + `" xmlns:r="` + relNamespace + `"><w:body>`)
	writeParagraph(&b, TitleStyleID, title)
	for _, line := range lines {
		writeParagraph(&b, BodyStyleID, line)
	}
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>`)
	b.WriteString(`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="708" w:footer="708" w:gutter="0"/>`)
	b.WriteString(`</w:sectPr></w:body></w:document>`)
	return b.String()
}

func writeParagraph(b *strings.Builder, style, text string) {
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="`)
	b.WriteString(style)
	b.WriteString(`"/></w:pPr><w:r><w:t xml:space="preserve">`)
	b.WriteString(escapeText(text))
	b.WriteString(`</w:t></w:r></w:p>`)
}

func escapeText(text string) string {
	var buf bytes.Buffer
	// EscapeText only fails when the writer does.
	_ = xml.EscapeText(&buf, []byte(text))
	return buf.String()
}

func renderStylesXML() string {
	ids := make([]string, 0, len(StyleMap))
	for id := range StyleMap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:styles xmlns:w="` + wmlNamespace + `">`)
	for _, id := range ids {
		style := StyleMap[id]
		b.WriteString(`<w:style w:type="paragraph"`)
		if id == BodyStyleID {
			b.WriteString(` w:default="1"`)
		}
		b.WriteString(` w:styleId="` + id + `"><w:name w:val="` + id + `"/>`)
		if id != BodyStyleID {
			b.WriteString(`<w:basedOn w:val="` + BodyStyleID + `"/><w:next w:val="` + BodyStyleID + `"/><w:qFormat/>`)
			b.WriteString(`<w:pPr><w:spacing w:after="240"/></w:pPr>`)
		}
		b.WriteString(`<w:rPr>`)
		if style.Bold {
			b.WriteString(`<w:b/>`)
		}
		if style.Italic {
			b.WriteString(`<w:i/>`)
		}
		if style.Color != "" {
			b.WriteString(`<w:color w:val="` + style.Color + `"/>`)
		}
		if style.Size > 0 {
			b.WriteString(`<w:sz w:val="` + strconv.Itoa(style.Size) + `"/>`)
		}
		b.WriteString(`</w:rPr></w:style>`)
	}
	b.WriteString(`</w:styles>`)
	return b.String()
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`
