package render

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nguyenthenguyen/docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-coach/internal/extract"
)

func TestRenderLetterParagraphCount(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lines []string
	}{
		{name: "single line", text: "Dear team,", lines: []string{"Dear team,"}},
		{name: "blank lines dropped", text: "Dear team,\n\n\nI am writing.\n   \nRegards", lines: []string{"Dear team,", "I am writing.", "Regards"}},
		{name: "crlf", text: "Hello\r\n\r\nWorld\r\n", lines: []string{"Hello", "World"}},
		{name: "spaces preserved", text: "  indented  \nnext", lines: []string{"  indented  ", "next"}},
		{name: "empty text", text: "\n \n", lines: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderLetter("", tt.text)
			require.NoError(t, err)

			paragraphs, err := Paragraphs(data)
			require.NoError(t, err)
			require.Len(t, paragraphs, 1+len(tt.lines))

			assert.Equal(t, Paragraph{Style: TitleStyleID, Text: DefaultTitle}, paragraphs[0])
			for i, line := range tt.lines {
				assert.Equal(t, Paragraph{Style: BodyStyleID, Text: line}, paragraphs[i+1])
			}
		})
	}
}

func TestRenderLetterIsIdempotent(t *testing.T) {
	text := "Dear hiring manager,\n\nI would like to apply.\nSincerely,\nAlex"
	first, err := RenderLetter("Cover Letter", text)
	require.NoError(t, err)
	second, err := RenderLetter("Cover Letter", text)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "renders must be byte-identical")
}

func TestRenderLetterEscapesMarkup(t *testing.T) {
	line := `R&D <lead> "quoted" 'single'`
	data, err := RenderLetter("Notes & <Title>", line)
	require.NoError(t, err)

	paragraphs, err := Paragraphs(data)
	require.NoError(t, err)
	require.Len(t, paragraphs, 2)
	assert.Equal(t, "Notes & <Title>", paragraphs[0].Text)
	assert.Equal(t, line, paragraphs[1].Text)
}

func TestRenderLetterPackageLayout(t *testing.T) {
	data, err := RenderLetter("Cover Letter", "Hello")
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	for _, file := range reader.File {
		names = append(names, file.Name)
		assert.True(t, file.Modified.Equal(fixedModTime), "entry %s has unexpected mtime %v", file.Name, file.Modified)
	}
	assert.Equal(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/styles.xml",
		"word/_rels/document.xml.rels",
	}, names)
}

func TestRenderLetterReadableByDocxLibrary(t *testing.T) {
	data, err := RenderLetter("Cover Letter", "First paragraph\nSecond paragraph")
	require.NoError(t, err)

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	defer doc.Close()

	content := doc.Editable().GetContent()
	assert.Contains(t, content, "First paragraph")
	assert.Contains(t, content, "Second paragraph")
	assert.Contains(t, content, `w:val="Title"`)
}

func TestRenderLetterRoundTripsThroughExtractor(t *testing.T) {
	data, err := RenderLetter("Cover Letter", "Dear team,\n\nI build APIs.\nBest")
	require.NoError(t, err)

	text, err := extract.ExtractTextFromBytes(context.Background(), data, "Cover_Letter.docx")
	require.NoError(t, err)
	assert.Equal(t, "Cover Letter\nDear team,\nI build APIs.\nBest", text)
}

func TestParagraphsRejectsNonDocx(t *testing.T) {
	_, err := Paragraphs([]byte("not a zip"))
	require.Error(t, err)

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	w, err := writer.Create("readme.txt")
	require.NoError(t, err)
	_, _ = w.Write([]byte("hi"))
	require.NoError(t, writer.Close())

	_, err = Paragraphs(buf.Bytes())
	assert.ErrorIs(t, err, ErrNoDocumentPart)
}

func TestValidateDocumentXMLStructure(t *testing.T) {
	nested := `<w:document xmlns:w="` + wmlNamespace + `"><w:body><w:p><w:p/></w:p></w:body></w:document>`
	err := validateDocumentXMLStructure(nested)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "nested"))

	good := renderDocumentXML("Title", []string{"a", "b"})
	assert.NoError(t, validateDocumentXMLStructure(good))
}

func TestStylesDeclareTitle(t *testing.T) {
	styles := renderStylesXML()
	assert.Contains(t, styles, `w:styleId="Title"`)
	assert.Contains(t, styles, `w:default="1" w:styleId="Normal"`)
	assert.Contains(t, styles, `<w:sz w:val="32"/>`)
}
