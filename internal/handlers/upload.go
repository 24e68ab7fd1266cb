package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/BerylCAtieno/speedminds/internal/extractor"
	"github.com/BerylCAtieno/speedminds/internal/models"
	"github.com/BerylCAtieno/speedminds/internal/utils"
)

const (
	fileField     = "file"
	maxFieldBytes = 64 << 10
)

// uploadForm is a parsed multipart request. The file, if any, has been
// spooled to a temp file that Cleanup removes.
type uploadForm struct {
	Document *models.UploadedDocument
	Fields   map[string]string
}

func (f *uploadForm) Value(name string) string {
	return f.Fields[name]
}

// readUpload streams a multipart body, writing the file part to a fresh temp
// file in h.uploadDir. A request that is not multipart yields an empty form.
// The returned cleanup must always be called.
func (h *DocumentHandler) readUpload(w http.ResponseWriter, r *http.Request) (*uploadForm, func(), error) {
	form := &uploadForm{Fields: map[string]string{}}
	var tempPath string

	cleanup := func() {
		if tempPath == "" {
			return
		}
		if err := os.Remove(tempPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			h.logger.Error("Failed to remove uploaded file", "error", err, "path", tempPath)
		}
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	reader, err := r.MultipartReader()
	if errors.Is(err, http.ErrNotMultipart) {
		return form, cleanup, nil
	}
	if err != nil {
		return nil, cleanup, utils.NewMissingInputError("Invalid form data.")
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, cleanup, uploadError(err)
		}

		if part.FormName() == fileField && part.FileName() != "" {
			if form.Document != nil {
				part.Close()
				continue
			}
			doc, err := h.spool(part)
			if doc != nil {
				tempPath = doc.Path
			}
			part.Close()
			if err != nil {
				return nil, cleanup, err
			}
			form.Document = doc
			continue
		}

		if name := part.FormName(); name != "" {
			value, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			part.Close()
			if err != nil {
				return nil, cleanup, uploadError(err)
			}
			form.Fields[name] = string(value)
		}
	}

	return form, cleanup, nil
}

func (h *DocumentHandler) spool(part *multipart.Part) (*models.UploadedDocument, error) {
	declared := part.Header.Get("Content-Type")

	tmp, err := os.CreateTemp(h.uploadDir, "upload-*")
	if err != nil {
		return nil, utils.NewInternalError("Failed to store upload", err)
	}

	doc := &models.UploadedDocument{
		Path:         tmp.Name(),
		MIMEType:     extractor.ResolveMIMEType(part.FileName(), declared),
		OriginalName: part.FileName(),
	}

	size, err := io.Copy(tmp, part)
	closeErr := tmp.Close()
	if err != nil {
		return doc, uploadError(err)
	}
	if closeErr != nil {
		return doc, utils.NewInternalError("Failed to store upload", closeErr)
	}
	doc.Size = size

	h.logger.Info("File received",
		"filename", doc.OriginalName,
		"declared_content_type", declared,
		"content_type", doc.MIMEType,
		"size", size)

	return doc, nil
}

func uploadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return utils.NewPayloadTooLargeError(fmt.Sprintf("File exceeds the %d byte upload limit.", maxErr.Limit))
	}
	if strings.Contains(err.Error(), "multipart") {
		return utils.NewMissingInputError("Invalid form data.")
	}
	return utils.NewInternalError("Failed to read upload", err)
}
