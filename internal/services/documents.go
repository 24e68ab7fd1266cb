package services

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/BerylCAtieno/speedminds/internal/analyzer"
	"github.com/BerylCAtieno/speedminds/internal/extractor"
	"github.com/BerylCAtieno/speedminds/internal/models"
	"github.com/BerylCAtieno/speedminds/internal/report"
	"github.com/BerylCAtieno/speedminds/internal/utils"
)

const (
	msgNoFile          = "No file uploaded."
	msgNoQuestion      = "No question provided."
	msgMissingReport   = "Missing required report data."
	msgEmptyDocument   = "The uploaded document contains no text."
	msgAnalyzeFailed   = "Failed to process document."
	msgAskFailed       = "Failed to answer question."
	msgSessionNotFound = "Session not found or expired."
)

type DocumentService interface {
	Analyze(ctx context.Context, doc *models.UploadedDocument) (*models.AnalysisResponse, error)
	Ask(ctx context.Context, req *models.AskRequest) (*models.AskResponse, error)
	RenderReport(ctx context.Context, req *models.ReportRequest) (*RenderedReport, error)
	EndSession(ctx context.Context, id string) error
}

type RenderedReport struct {
	Filename string
	Data     []byte
}

type documentService struct {
	analyzer analyzer.Analyzer
	sessions *SessionStore
	logger   *utils.Logger
}

// NewService wires the document operations. sessions may be nil, in which
// case every question must come with its file.
func NewService(a analyzer.Analyzer, sessions *SessionStore, logger *utils.Logger) DocumentService {
	return &documentService{
		analyzer: a,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *documentService) Analyze(ctx context.Context, doc *models.UploadedDocument) (*models.AnalysisResponse, error) {
	if doc == nil {
		return nil, utils.NewMissingInputError(msgNoFile)
	}

	content, err := s.extract(doc, msgAnalyzeFailed)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Starting document analysis",
		"filename", doc.OriginalName,
		"content_type", content.MIMEType,
		"content_kind", content.Kind,
		"content_size", content.Size())

	result, err := s.analyzer.Analyze(ctx, content)
	if err != nil {
		s.logger.Error("Failed to analyze document", "error", err, "filename", doc.OriginalName)
		return nil, utils.NewUpstreamError(msgAnalyzeFailed, err)
	}

	resp := &models.AnalysisResponse{
		Summary:      result.Summary,
		Topics:       result.Topics,
		DocumentName: doc.OriginalName,
	}

	if s.sessions != nil {
		session, err := s.sessions.Save(ctx, doc.OriginalName, content)
		if err != nil {
			// The analysis is still good; the client falls back to re-uploading.
			s.logger.Warn("Failed to create session", "error", err, "filename", doc.OriginalName)
		} else {
			resp.SessionID = session.ID
		}
	}

	s.logger.Info("Document analyzed successfully",
		"filename", doc.OriginalName,
		"topics", len(result.Topics),
		"summary_length", len(result.Summary))

	return resp, nil
}

func (s *documentService) Ask(ctx context.Context, req *models.AskRequest) (*models.AskResponse, error) {
	if req.Document == nil && (req.SessionID == "" || s.sessions == nil) {
		return nil, utils.NewMissingInputError(msgNoFile)
	}
	if strings.TrimSpace(req.Question) == "" {
		return nil, utils.NewMissingInputError(msgNoQuestion)
	}

	var (
		content      *extractor.Content
		documentName string
		err          error
	)

	if req.Document != nil {
		content, err = s.extract(req.Document, msgAskFailed)
		documentName = req.Document.OriginalName
	} else {
		var session *models.Session
		session, content, err = s.sessions.Load(ctx, req.SessionID)
		if errors.Is(err, ErrSessionNotFound) {
			return nil, utils.NewNotFoundError(msgSessionNotFound)
		}
		if err != nil {
			s.logger.Error("Failed to load session", "error", err, "session_id", req.SessionID)
			return nil, utils.NewUpstreamError(msgAskFailed, err)
		}
		documentName = session.DocumentName
	}
	if err != nil {
		return nil, err
	}

	answer, err := s.analyzer.Ask(ctx, content, req.Question)
	if err != nil {
		s.logger.Error("Failed to answer question", "error", err, "document", documentName)
		return nil, utils.NewUpstreamError(msgAskFailed, err)
	}

	return &models.AskResponse{
		Question:     req.Question,
		Answer:       answer,
		DocumentName: documentName,
	}, nil
}

func (s *documentService) RenderReport(_ context.Context, req *models.ReportRequest) (*RenderedReport, error) {
	if req == nil || req.DocumentName == "" || req.Summary == "" || req.Topics == nil {
		return nil, utils.NewMissingInputError(msgMissingReport)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, *req); err != nil {
		s.logger.Error("Failed to render report", "error", err, "document", req.DocumentName)
		return nil, utils.NewInternalError("Failed to generate report", err)
	}

	return &RenderedReport{
		Filename: report.Filename(req.DocumentName),
		Data:     buf.Bytes(),
	}, nil
}

func (s *documentService) EndSession(ctx context.Context, id string) error {
	if s.sessions == nil {
		return utils.NewNotFoundError(msgSessionNotFound)
	}

	err := s.sessions.Delete(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return utils.NewNotFoundError(msgSessionNotFound)
	}
	if err != nil {
		s.logger.Error("Failed to end session", "error", err, "session_id", id)
		return utils.NewInternalError("Failed to end session", err)
	}
	return nil
}

// extract turns an upload into model content. Unsupported types are refused
// before the file is read.
func (s *documentService) extract(doc *models.UploadedDocument, failure string) (*extractor.Content, error) {
	if !extractor.IsSupported(doc.MIMEType) {
		s.logger.Warn("Unsupported content type", "content_type", doc.MIMEType, "filename", doc.OriginalName)
		return nil, utils.NewUnsupportedFileTypeError(doc.MIMEType)
	}

	content, err := extractor.Extract(doc.Path, doc.MIMEType)
	switch {
	case err == nil:
		return content, nil
	case errors.Is(err, extractor.ErrEmptyDocument):
		return nil, utils.NewMissingInputError(msgEmptyDocument)
	case errors.Is(err, extractor.ErrUnsupportedFileType):
		return nil, utils.NewUnsupportedFileTypeError(doc.MIMEType)
	default:
		s.logger.Error("Failed to extract document", "error", err, "content_type", doc.MIMEType, "filename", doc.OriginalName)
		return nil, utils.NewUpstreamError(failure, err)
	}
}
