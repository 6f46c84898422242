// Package backend opens the content store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"google.golang.org/api/option"

	"dataroom/internal/config"
	"dataroom/internal/storage"
	"dataroom/internal/storage/badger"
	"dataroom/internal/storage/fs"
	"dataroom/internal/storage/gcs"
	"dataroom/internal/storage/memory"
	"dataroom/internal/storage/s3"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the configured content store and a closer for its resources
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.ContentStore, io.Closer, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		logger.Warn("content store is in-memory; uploads are lost on restart")
		return memory.NewStore(), nopCloser{}, nil

	case config.StorageFS:
		store, err := fs.NewStore(cfg.StorageDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("content store ready", "backend", cfg.StorageBackend, "dir", cfg.StorageDir)
		return store, nopCloser{}, nil

	case config.StorageBadger:
		store, err := badger.NewStore(cfg.StorageDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("content store ready", "backend", cfg.StorageBackend, "dir", cfg.StorageDir)
		return store, store, nil

	case config.StorageS3:
		store, err := s3.NewStore(ctx, s3.Config{
			Bucket:          cfg.S3Bucket,
			KeyPrefix:       cfg.S3Prefix,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("content store ready", "backend", cfg.StorageBackend, "bucket", cfg.S3Bucket)
		return store, nopCloser{}, nil

	case config.StorageGCS:
		store, err := gcs.NewStore(ctx, cfg.GCSBucket, cfg.GCSPrefix, gcsCredentials(cfg.GCSCredentials)...)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("content store ready", "backend", cfg.StorageBackend, "bucket", cfg.GCSBucket)
		return store, store, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// gcsCredentials accepts inline service account JSON or a path to it
func gcsCredentials(creds string) []option.ClientOption {
	creds = strings.TrimSpace(creds)
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}
