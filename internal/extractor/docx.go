package extractor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// ExtractDOCX returns the document body as plain text, one line per
// paragraph. Formatting is dropped.
func ExtractDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	text, err := documentText(r.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("failed to parse document.xml: %w", err)
	}

	if text == "" {
		return "", fmt.Errorf("no text could be extracted from DOCX: %w", ErrEmptyDocument)
	}

	return text, nil
}

// documentText walks word/document.xml and collects the w:t runs. Tables,
// hyperlinks and text boxes are flattened in document order.
func documentText(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		textBuilder strings.Builder
		line        strings.Builder
		inText      bool
	)

	flush := func() {
		if l := strings.TrimSpace(line.String()); l != "" {
			textBuilder.WriteString(l)
			textBuilder.WriteString("\n")
		}
		line.Reset()
	}

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				line.WriteString("\t")
			case "br", "cr":
				flush()
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inText {
				line.Write(t)
			}
		}
	}
	flush()

	return strings.TrimSpace(textBuilder.String()), nil
}
