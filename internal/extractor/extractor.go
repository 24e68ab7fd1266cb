package extractor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETypeTXT  = "text/plain"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("document contains no text")
)

// Kind says how the content travels to the model.
type Kind string

const (
	KindBinary Kind = "binary"
	KindText   Kind = "text"
)

// Content is what the LLM receives for a document: raw bytes the model reads
// natively (PDF) or plain text.
type Content struct {
	Kind     Kind
	MIMEType string
	Data     []byte
	Text     string
}

// Base64 is the inline transmission form of binary content.
func (c *Content) Base64() string {
	return base64.StdEncoding.EncodeToString(c.Data)
}

// PlainText returns the document as text, extracting it from PDF bytes for
// consumers that cannot read binary content.
func (c *Content) PlainText() (string, error) {
	if c.Kind == KindText {
		return c.Text, nil
	}
	if c.MIMEType != MIMETypePDF {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, c.MIMEType)
	}
	return ExtractPDF(c.Data)
}

// Bytes is the storable form of the content.
func (c *Content) Bytes() []byte {
	if c.Kind == KindBinary {
		return c.Data
	}
	return []byte(c.Text)
}

func (c *Content) Size() int64 {
	return int64(len(c.Bytes()))
}

// FromStored rebuilds content previously flattened with Bytes.
func FromStored(kind Kind, mimeType string, data []byte) (*Content, error) {
	switch kind {
	case KindBinary:
		return &Content{Kind: KindBinary, MIMEType: mimeType, Data: data}, nil
	case KindText:
		return &Content{Kind: KindText, MIMEType: mimeType, Text: string(data)}, nil
	default:
		return nil, fmt.Errorf("unknown content kind %q", kind)
	}
}

// Extract reads the file at path according to its declared MIME type.
func Extract(path, mimeType string) (*Content, error) {
	normalized := Normalize(mimeType)

	switch {
	case normalized == MIMETypePDF:
		data, err := readPDF(path)
		if err != nil {
			return nil, err
		}
		return &Content{Kind: KindBinary, MIMEType: MIMETypePDF, Data: data}, nil
	case normalized == MIMETypeTXT:
		text, err := ExtractTXTFile(path)
		if err != nil {
			return nil, err
		}
		return &Content{Kind: KindText, MIMEType: MIMETypeTXT, Text: text}, nil
	case normalized == MIMETypeDOCX:
		text, err := ExtractDOCX(path)
		if err != nil {
			return nil, err
		}
		return &Content{Kind: KindText, MIMEType: MIMETypeDOCX, Text: text}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, mimeType)
	}
}

// Normalize maps a declared MIME type and its known aliases to the canonical
// type. Unknown types come back with parameters stripped.
func Normalize(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = strings.TrimSpace(mimeType)
	}
	mediaType = strings.ToLower(mediaType)

	switch {
	case mediaType == MIMETypePDF:
		return MIMETypePDF
	case isTXTContentType(mediaType):
		return MIMETypeTXT
	case isDOCXContentType(mediaType):
		return MIMETypeDOCX
	}

	return mediaType
}

func IsSupported(mimeType string) bool {
	switch Normalize(mimeType) {
	case MIMETypePDF, MIMETypeTXT, MIMETypeDOCX:
		return true
	}
	return false
}

// ResolveMIMEType picks the MIME type for an upload. A supported declared
// type wins; otherwise the file extension decides. When neither is known the
// declared type is returned unchanged so the caller can report it.
func ResolveMIMEType(filename, declared string) string {
	if IsSupported(declared) {
		return Normalize(declared)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MIMETypePDF
	case ".docx":
		return MIMETypeDOCX
	case ".txt":
		return MIMETypeTXT
	}

	if declared == "" {
		return "application/octet-stream"
	}
	return declared
}

// isDOCXContentType checks if the content type is a DOCX file
// Handles various DOCX MIME type variations
func isDOCXContentType(contentType string) bool {
	docxTypes := []string{
		MIMETypeDOCX,
		"application/vnd.openxmlformats-officedocument.wordprocessingml",
		"application/docx",
		"application/x-docx",
	}

	for _, docxType := range docxTypes {
		if contentType == docxType {
			return true
		}
	}

	return false
}

func isTXTContentType(contentType string) bool {
	switch contentType {
	case MIMETypeTXT, "text/txt", "application/txt", "application/x-txt":
		return true
	}
	return false
}
