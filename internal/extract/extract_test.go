package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"career-coach/internal/extract/extracttest"
)

func TestExtractPDFSinglePage(t *testing.T) {
	data := extracttest.PDF("Experienced backend engineer, 5 years Go")

	text, err := ExtractPDF(context.Background(), data)
	if err != nil {
		t.Fatalf("extract pdf: %v", err)
	}
	if !strings.Contains(text, "Experienced backend engineer, 5 years Go") {
		t.Fatalf("expected page text, got %q", text)
	}
}

func TestExtractPDFConcatenatesPagesInOrder(t *testing.T) {
	ctx := context.Background()
	pages := []string{"First page", "", "Third page"}

	var want strings.Builder
	for _, p := range pages {
		single, err := ExtractPDF(ctx, extracttest.PDF(p))
		if err != nil {
			t.Fatalf("extract single page %q: %v", p, err)
		}
		want.WriteString(single)
	}

	got, err := ExtractPDF(ctx, extracttest.PDF(pages...))
	if err != nil {
		t.Fatalf("extract multi page: %v", err)
	}
	if got != want.String() {
		t.Fatalf("expected concatenation %q, got %q", want.String(), got)
	}
	if strings.Index(got, "First page") > strings.Index(got, "Third page") {
		t.Fatalf("pages out of order: %q", got)
	}
}

func TestExtractPDFEmptyPageContributesNothing(t *testing.T) {
	text, err := ExtractPDF(context.Background(), extracttest.PDF(""))
	if err != nil {
		t.Fatalf("expected no error for empty page, got %v", err)
	}
	if strings.TrimSpace(text) != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestExtractTextFromBytesCorruptedPDF(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		fileName string
		want     error
	}{
		{name: "garbage named pdf", data: []byte("this is definitely not a pdf document"), fileName: "cv.pdf", want: ErrInvalidPDF},
		{name: "truncated pdf", data: extracttest.PDF("hello")[:60], fileName: "cv.pdf", want: ErrInvalidPDF},
		{name: "plain text", data: []byte("just some text"), fileName: "cv.txt", want: ErrUnsupportedType},
		{name: "empty", data: nil, fileName: "cv.pdf", want: ErrEmptyDocument},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractTextFromBytes(context.Background(), tt.data, tt.fileName)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestExtractTextFromBytesDetectsPDFWithoutExtension(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), extracttest.PDF("Go developer"), "upload")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "Go developer") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractTextFromBytesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractTextFromBytes(ctx, extracttest.PDF("x"), "cv.pdf"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExtractTextFromBytesRealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ExtractTextFromBytes(context.Background(), buf.Bytes(), "notes.zip")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected unsupported type, got %v", err)
	}
	if !strings.Contains(err.Error(), "application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStripDocxXML(t *testing.T) {
	raw := `<w:document xmlns:w="x"><w:body><w:p><w:r><w:t>Hello</w:t></w:r></w:p><w:p><w:r><w:t>World</w:t></w:r></w:p></w:body></w:document>`
	if got := stripDocxXML(raw); got != "Hello\nWorld" {
		t.Fatalf("unexpected text %q", got)
	}
}
