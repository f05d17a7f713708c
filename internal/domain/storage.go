package domain

import (
	"context"
	"io"
)

// Хранилище бинарного контента (S3/MinIO): обложки статей,
// превью шортов, постраничные PDF выпусков
type BlobPutResult struct {
	StorageKey string
	URL        string
	Size       int64
}

type BlobStorage interface {
	// Сохранение нового файла (возвращает ключ и публичный URL)
	Put(ctx context.Context, r io.Reader, size int64, hintName, mime string) (BlobPutResult, error)
	Delete(ctx context.Context, storageKey string) error
}
