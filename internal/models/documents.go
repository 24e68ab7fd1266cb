package models

import (
	"time"
)

// UploadedDocument lives only for the duration of one request.
type UploadedDocument struct {
	Path         string
	MIMEType     string
	OriginalName string
	Size         int64
}

type Topic struct {
	Topic       string `json:"topic"`
	Explanation string `json:"explanation"`
}

type AnalysisResult struct {
	Summary string  `json:"summary"`
	Topics  []Topic `json:"topics"`
}

type QAEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type AnalysisResponse struct {
	Summary      string  `json:"summary"`
	Topics       []Topic `json:"topics"`
	DocumentName string  `json:"documentName"`
	SessionID    string  `json:"sessionId,omitempty"`
}

type AskRequest struct {
	Question  string
	SessionID string
	Document  *UploadedDocument
}

type AskResponse struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DocumentName string `json:"documentName"`
}

type ReportRequest struct {
	DocumentName string    `json:"documentName"`
	Summary      string    `json:"summary"`
	Topics       []Topic   `json:"topics"`
	QAHistory    []QAEntry `json:"qaHistory"`
}

// Session holds extracted content for follow-up questions without re-upload.
type Session struct {
	ID           string    `json:"id"`
	DocumentName string    `json:"document_name"`
	MIMEType     string    `json:"mime_type"`
	ContentKind  string    `json:"content_kind"`
	StorageKey   string    `json:"storage_key"`
	ContentSize  int64     `json:"content_size"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
