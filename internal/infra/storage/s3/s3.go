package s3

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/EgorLis/news-cms/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
	PublicURL string // база публичных ссылок, напр. https://cdn.example.com
}

type Storage struct {
	cl        *minio.Client
	logger    *log.Logger
	bucket    string
	publicURL string
}

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, logger: logger, bucket: cfg.Bucket, publicURL: strings.TrimRight(cfg.PublicURL, "/")}, nil
}

var _ domain.BlobStorage = (*Storage)(nil)

// Put загружает поток; ключ — "uploads/<sha256-префикс>/<имя>",
// чтобы повторная загрузка того же файла не плодила дубликаты имён.
func (s *Storage) Put(ctx context.Context, r io.Reader, size int64, hintName, mime string) (domain.BlobPutResult, error) {
	h := sha256.Sum256([]byte(hintName))
	key := path.Join("uploads", hex.EncodeToString(h[:4]), sanitize(hintName))

	info, err := s.cl.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: mime,
	})
	if err != nil {
		s.logger.Printf("PUT %q failed: %v", key, err)
		return domain.BlobPutResult{}, err
	}
	s.logger.Printf("PUT %q ok (%d bytes)", key, info.Size)

	return domain.BlobPutResult{
		StorageKey: key,
		URL:        fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key),
		Size:       info.Size,
	}, nil
}

func (s *Storage) Delete(ctx context.Context, storageKey string) error {
	err := s.cl.RemoveObject(ctx, s.bucket, storageKey, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.Printf("DELETE %q failed: %v", storageKey, err)
		return err
	}
	s.logger.Printf("DELETE %q ok", storageKey)
	return nil
}

func sanitize(name string) string {
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" || name == "." {
		name = "file"
	}
	return name
}
