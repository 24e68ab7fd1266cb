package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/speedminds/internal/config"
)

var ErrObjectNotFound = errors.New("object not found")

// Storage keeps session content blobs.
type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// New returns the backend selected by cfg.SessionStore.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.SessionStore {
	case config.SessionStoreFilesystem:
		return NewFilesystemStorage(cfg.SessionStoreDir)
	case config.SessionStoreS3:
		return NewS3Storage(ctx, S3Options{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3BucketName,
			UseSSL:          cfg.S3UseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}
