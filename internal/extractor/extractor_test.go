package extractor

import (
	"archive/zip"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Paris is the capital</w:t></w:r><w:r><w:t xml:space="preserve"> of France.</w:t></w:r></w:p>
    <w:p><w:r><w:rPr><w:b/></w:rPr><w:t>Second paragraph</w:t></w:r></w:p>
    <w:tbl><w:tr><w:tc><w:p><w:r><w:t>Table cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
  </w:body>
</w:document>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
</Types>`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writeSampleDOCX(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		"[Content_Types].xml":          contentTypesXML,
		"word/document.xml":            body,
		"word/_rels/document.xml.rels": relsXML,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func writeSamplePDF(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.pdf")
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(40, 10, text)
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

func TestExtractPDFKeepsRawBytes(t *testing.T) {
	path := writeSamplePDF(t, "Paris is the capital of France.")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	content, err := Extract(path, "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, KindBinary, content.Kind)
	assert.Equal(t, MIMETypePDF, content.MIMEType)
	assert.Equal(t, raw, content.Data)

	decoded, err := base64.StdEncoding.DecodeString(content.Base64())
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestExtractPDFText(t *testing.T) {
	path := writeSamplePDF(t, "Paris is the capital of France.")

	content, err := Extract(path, MIMETypePDF)
	require.NoError(t, err)

	text, err := content.PlainText()
	require.NoError(t, err)
	assert.Contains(t, text, "Paris")
}

func TestExtractTXT(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("Paris is the capital of France.\r\n\r\n"))

	content, err := Extract(path, "text/plain; charset=utf-8")
	require.NoError(t, err)

	assert.Equal(t, KindText, content.Kind)
	assert.Equal(t, "Paris is the capital of France.", content.Text)
}

func TestExtractTXTEncodings(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "utf8 bom",
			data: append([]byte{0xEF, 0xBB, 0xBF}, []byte("héllo")...),
			want: "héllo",
		},
		{
			name: "utf16 little endian",
			data: []byte{0xFF, 0xFE, 'h', 0, 'i', 0},
			want: "hi",
		},
		{
			name: "windows-1252 fallback",
			data: []byte{'c', 'a', 'f', 0xE9},
			want: "café",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractTXT(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestExtractEmptyTXT(t *testing.T) {
	path := writeFile(t, "empty.txt", nil)

	_, err := Extract(path, MIMETypeTXT)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestExtractDOCX(t *testing.T) {
	path := writeSampleDOCX(t, documentXML)

	content, err := Extract(path, MIMETypeDOCX)
	require.NoError(t, err)

	assert.Equal(t, KindText, content.Kind)
	assert.Equal(t, "Paris is the capital of France.\nSecond paragraph\nTable cell", content.Text)
}

func TestExtractDOCXAlias(t *testing.T) {
	path := writeSampleDOCX(t, documentXML)

	content, err := Extract(path, "application/x-docx")
	require.NoError(t, err)
	assert.Equal(t, MIMETypeDOCX, content.MIMEType)
}

func TestExtractUnsupported(t *testing.T) {
	path := writeFile(t, "image.png", []byte{0x89, 'P', 'N', 'G'})

	_, err := Extract(path, "image/png")
	require.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.Contains(t, err.Error(), "image/png")
}

func TestResolveMIMEType(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		declared string
		want     string
	}{
		{"declared pdf", "report.bin", "application/pdf", MIMETypePDF},
		{"declared text with charset", "notes", "text/plain; charset=utf-8", MIMETypeTXT},
		{"octet stream docx", "thesis.docx", "application/octet-stream", MIMETypeDOCX},
		{"missing header txt", "notes.TXT", "", MIMETypeTXT},
		{"unknown stays unknown", "photo.png", "image/png", "image/png"},
		{"nothing known", "blob", "", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveMIMEType(tt.filename, tt.declared))
		})
	}
}

func TestFromStoredRoundTrip(t *testing.T) {
	text := &Content{Kind: KindText, MIMEType: MIMETypeTXT, Text: "hello"}
	restored, err := FromStored(text.Kind, text.MIMEType, text.Bytes())
	require.NoError(t, err)
	assert.Equal(t, text, restored)

	_, err = FromStored("video", "video/mp4", nil)
	assert.Error(t, err)
}
