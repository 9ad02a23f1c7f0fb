package textextract_test

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamforge/profile-extractor/constants"
	"github.com/teamforge/profile-extractor/internal/common"
	"github.com/teamforge/profile-extractor/internal/textextract"
)

func TestExtractUnsupportedSuffix(t *testing.T) {
	e := textextract.NewExtractor(nil)
	for _, name := range []string{"resume.exe", "resume.png", "resume", "resume.pdf.bak"} {
		_, err := e.Extract(context.Background(), name, []byte("payload"))
		require.Error(t, err, name)
		assert.True(t, common.IsKind(err, common.KindUnsupportedFormat), name)
	}
}

func TestExtractPlainText(t *testing.T) {
	e := textextract.NewExtractor(nil)
	res, err := e.Extract(context.Background(), "resume.txt", []byte("Jane  Doe\n\n\n\nEngineer  at Acme\r\n"))
	require.NoError(t, err)
	assert.Equal(t, constants.TXT, res.Format)
	assert.Equal(t, "Jane Doe\n\nEngineer at Acme", res.Text)
}

func TestExtractEmptyTextIsUnreadable(t *testing.T) {
	e := textextract.NewExtractor(nil)
	_, err := e.Extract(context.Background(), "scan.txt", []byte("  \n\t \x00 \n"))
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindUnreadableDocument))
}

func TestExtractCorruptPDFIsUnreadable(t *testing.T) {
	e := textextract.NewExtractor(nil)
	_, err := e.Extract(context.Background(), "resume.pdf", []byte("not a pdf at all"))
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindUnreadableDocument))
}

func TestExtractSuffixIsCaseInsensitive(t *testing.T) {
	e := textextract.NewExtractor(nil)
	res, err := e.Extract(context.Background(), "RESUME.TXT", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Text)
}

func TestExtractPDFJoinsPagesWithBlankLine(t *testing.T) {
	e := textextract.NewExtractor(nil)
	doc := buildPDF(
		"Jane Doe, Platform Engineer",
		"Certified Kubernetes Administrator",
	)

	res, err := e.Extract(context.Background(), "resume.pdf", doc)
	require.NoError(t, err)
	assert.Equal(t, constants.PDF, res.Format)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "Jane Doe, Platform Engineer\n\nCertified Kubernetes Administrator", res.Text)
	assert.NotContains(t, res.Text, "\n\n\n")
}

func TestExtractDOCXParagraphs(t *testing.T) {
	e := textextract.NewExtractor(nil)
	doc := buildDOCX(t, "Jane Doe", "Engineer at Acme")

	res, err := e.Extract(context.Background(), "resume.docx", doc)
	require.NoError(t, err)
	assert.Equal(t, constants.DOCX, res.Format)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, "Jane Doe\nEngineer at Acme", res.Text)
}

// buildPDF assembles a minimal uncompressed PDF with one line of Helvetica
// text per page, writing the xref table with exact byte offsets.
func buildPDF(pageTexts ...string) []byte {
	n := len(pageTexts)
	fontID := 3 + 2*n
	kids := make([]string, n)
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}

	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
	}
	for i, text := range pageTexts {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontID, 4+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}
	objs = append(objs, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs)+1)
	for i, obj := range objs {
		offsets[i+1] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objs)+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objs); i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return b.Bytes()
}

// buildDOCX zips a minimal word-processor document, one run per paragraph.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>")
	}
	files := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml",
			`<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`},
		{"word/_rels/document.xml.rels",
			`<?xml version="1.0"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
		{"word/document.xml",
			`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
				body.String() + `</w:body></w:document>`},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
