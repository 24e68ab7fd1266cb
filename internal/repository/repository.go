package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/BerylCAtieno/speedminds/internal/models"
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	ListExpired(ctx context.Context, now time.Time, limit int) ([]*models.Session, error)
}

type sessionRepository struct {
	db *sqlx.DB
}

// sessionRow stores timestamps as unix nanoseconds so expiry comparisons
// happen on integers.
type sessionRow struct {
	ID           string `db:"id"`
	DocumentName string `db:"document_name"`
	MIMEType     string `db:"mime_type"`
	ContentKind  string `db:"content_kind"`
	StorageKey   string `db:"storage_key"`
	ContentSize  int64  `db:"content_size"`
	CreatedAt    int64  `db:"created_at"`
	ExpiresAt    int64  `db:"expires_at"`
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, document_name, mime_type, content_kind, storage_key, content_size, created_at, expires_at)
		VALUES (:id, :document_name, :mime_type, :content_kind, :storage_key, :content_size, :created_at, :expires_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, toRow(session))
	return err
}

// GetByID returns nil, nil when no session has the id.
func (r *sessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var row sessionRow

	query := `
		SELECT id, document_name, mime_type, content_kind, storage_key, content_size, created_at, expires_at
		FROM sessions
		WHERE id = ?
	`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return fromRow(row), nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (r *sessionRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]*models.Session, error) {
	var rows []sessionRow

	query := `
		SELECT id, document_name, mime_type, content_kind, storage_key, content_size, created_at, expires_at
		FROM sessions
		WHERE expires_at <= ?
		ORDER BY expires_at
		LIMIT ?
	`

	if err := r.db.SelectContext(ctx, &rows, query, now.UnixNano(), limit); err != nil {
		return nil, err
	}

	sessions := make([]*models.Session, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, fromRow(row))
	}
	return sessions, nil
}

func toRow(s *models.Session) sessionRow {
	return sessionRow{
		ID:           s.ID,
		DocumentName: s.DocumentName,
		MIMEType:     s.MIMEType,
		ContentKind:  s.ContentKind,
		StorageKey:   s.StorageKey,
		ContentSize:  s.ContentSize,
		CreatedAt:    s.CreatedAt.UnixNano(),
		ExpiresAt:    s.ExpiresAt.UnixNano(),
	}
}

func fromRow(row sessionRow) *models.Session {
	return &models.Session{
		ID:           row.ID,
		DocumentName: row.DocumentName,
		MIMEType:     row.MIMEType,
		ContentKind:  row.ContentKind,
		StorageKey:   row.StorageKey,
		ContentSize:  row.ContentSize,
		CreatedAt:    time.Unix(0, row.CreatedAt).UTC(),
		ExpiresAt:    time.Unix(0, row.ExpiresAt).UTC(),
	}
}
