package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/speedminds/internal/extractor"
	"github.com/BerylCAtieno/speedminds/internal/models"
	"github.com/BerylCAtieno/speedminds/internal/repository"
	"github.com/BerylCAtieno/speedminds/internal/storage"
	"github.com/BerylCAtieno/speedminds/internal/utils"
)

const purgeBatchSize = 100

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps extracted document content under an opaque token for a
// limited time. Metadata lives in the repository, content in storage.
type SessionStore struct {
	repo    repository.SessionRepository
	storage storage.Storage
	ttl     time.Duration
	logger  *utils.Logger
	now     func() time.Time
}

func NewSessionStore(repo repository.SessionRepository, store storage.Storage, ttl time.Duration, logger *utils.Logger) *SessionStore {
	return &SessionStore{
		repo:    repo,
		storage: store,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *SessionStore) Save(ctx context.Context, documentName string, content *extractor.Content) (*models.Session, error) {
	id := utils.GenerateID()
	now := s.now().UTC()

	session := &models.Session{
		ID:           id,
		DocumentName: documentName,
		MIMEType:     content.MIMEType,
		ContentKind:  string(content.Kind),
		StorageKey:   "sessions/" + id,
		ContentSize:  content.Size(),
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}

	if err := s.storage.Upload(ctx, session.StorageKey, content.Bytes(), content.MIMEType); err != nil {
		return nil, fmt.Errorf("failed to store session content: %w", err)
	}

	if err := s.repo.Create(ctx, session); err != nil {
		if delErr := s.storage.Delete(ctx, session.StorageKey); delErr != nil {
			s.logger.Warn("Failed to remove orphaned session content", "error", delErr, "session_id", id)
		}
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// Load returns ErrSessionNotFound for unknown, malformed and expired ids.
func (s *SessionStore) Load(ctx context.Context, id string) (*models.Session, *extractor.Content, error) {
	if !utils.ValidID(id) {
		return nil, nil, ErrSessionNotFound
	}

	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || session.Expired(s.now()) {
		return nil, nil, ErrSessionNotFound
	}

	data, err := s.storage.Download(ctx, session.StorageKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load session content: %w", err)
	}

	content, err := extractor.FromStored(extractor.Kind(session.ContentKind), session.MIMEType, data)
	if err != nil {
		return nil, nil, err
	}

	return session, content, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if !utils.ValidID(id) {
		return ErrSessionNotFound
	}

	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return ErrSessionNotFound
	}

	return s.remove(ctx, session)
}

// PurgeExpired removes every expired session and returns how many went.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int, error) {
	purged := 0
	for {
		expired, err := s.repo.ListExpired(ctx, s.now(), purgeBatchSize)
		if err != nil {
			return purged, fmt.Errorf("failed to list expired sessions: %w", err)
		}

		for _, session := range expired {
			if err := s.remove(ctx, session); err != nil {
				return purged, err
			}
			purged++
		}

		if len(expired) < purgeBatchSize {
			return purged, nil
		}
	}
}

// RunJanitor purges expired sessions every interval until ctx is done.
func (s *SessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				s.logger.Error("Failed to purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Info("Purged expired sessions", "count", n)
			}
		}
	}
}

func (s *SessionStore) remove(ctx context.Context, session *models.Session) error {
	if err := s.storage.Delete(ctx, session.StorageKey); err != nil {
		return fmt.Errorf("failed to delete session content: %w", err)
	}
	if err := s.repo.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
