package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"hiregate_backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider abstracts where uploaded resumes live.
type StorageProvider interface {
	Upload(ctx context.Context, object string, reader io.Reader, size int64, contentType string) error
	Open(ctx context.Context, object string) (io.ReadCloser, error)
	Delete(ctx context.Context, object string) error
}

func NewStorageProvider(cfg *config.StorageConfig) (StorageProvider, error) {
	switch cfg.Type {
	case "minio":
		return NewMinioStorageProvider(cfg)
	case "local", "":
		return &LocalStorageProvider{Config: cfg}, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) path(object string) string {
	return filepath.Join(p.Config.LocalPath, filepath.Clean("/"+object))
}

func (p *LocalStorageProvider) Upload(ctx context.Context, object string, reader io.Reader, size int64, contentType string) error {
	dst := p.path(object)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, reader)
	return err
}

func (p *LocalStorageProvider) Open(ctx context.Context, object string) (io.ReadCloser, error) {
	return os.Open(p.path(object))
}

func (p *LocalStorageProvider) Delete(ctx context.Context, object string) error {
	return os.Remove(p.path(object))
}

type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, object string, reader io.Reader, size int64, contentType string) error {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, object, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (p *MinioStorageProvider) Open(ctx context.Context, object string) (io.ReadCloser, error) {
	obj, err := p.Client.GetObject(ctx, p.Config.MinioBucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, object string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, object, minio.RemoveObjectOptions{})
}
