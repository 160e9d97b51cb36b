package convert

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dendrascience/lazconv/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const lazContentType = "application/vnd.laszip"

// ObjectStore is the subset of *minio.Client the bucket archiver uses.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	StatObject(ctx context.Context, bucket, object string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	FPutObject(ctx context.Context, bucket, object, filePath string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// BucketArchiver uploads sources to an S3-compatible bucket and removes the
// local copy. Object keys mirror the folder layout of DirArchiver.
type BucketArchiver struct {
	Root   string
	Name   string
	Layout Layout
	Bucket string

	store ObjectStore
	log   *zap.Logger
}

// NewMinIOStore connects to the archive endpoint.
func NewMinIOStore(cfg config.ArchiveConfig) (*minio.Client, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("archive bucket %q configured without credentials", cfg.Bucket)
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return client, nil
}

func NewBucketArchiver(store ObjectStore, bucket, root, name string, layout Layout, log *zap.Logger) *BucketArchiver {
	if log == nil {
		log = zap.NewNop()
	}
	return &BucketArchiver{
		Root:   root,
		Name:   name,
		Layout: layout,
		Bucket: bucket,
		store:  store,
		log:    log.Named("bucket"),
	}
}

// Prepare makes sure the bucket exists, creating it when missing.
func (b *BucketArchiver) Prepare(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := b.store.BucketExists(ctx, b.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", b.Bucket, err)
	}
	if exists {
		return nil
	}
	if err := b.store.MakeBucket(ctx, b.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", b.Bucket, err)
	}
	b.log.Info("Created archive bucket", zap.String("bucket", b.Bucket))
	return nil
}

func (b *BucketArchiver) objectKey(src string) (string, error) {
	key, err := archiveKey(b.Root, b.Name, b.Layout, src)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(key), nil
}

func (b *BucketArchiver) Dispose(ctx context.Context, src string) (Disposition, error) {
	key, err := b.objectKey(src)
	if err != nil {
		return DispositionNone, err
	}

	_, err = b.store.StatObject(ctx, b.Bucket, key, minio.StatObjectOptions{})
	switch {
	case err == nil:
		b.log.Warn("Archive object exists, deleting source instead of uploading",
			zap.String("source", src),
			zap.String("object", key),
		)
		if err := os.Remove(src); err != nil {
			return DispositionNone, err
		}
		return DispositionDuplicate, nil
	case !isNoSuchKey(err):
		return DispositionNone, fmt.Errorf("stat %s/%s: %w", b.Bucket, key, err)
	}

	if _, err := b.store.FPutObject(ctx, b.Bucket, key, src, minio.PutObjectOptions{ContentType: lazContentType}); err != nil {
		return DispositionNone, fmt.Errorf("upload %s: %w", src, err)
	}
	if err := os.Remove(src); err != nil {
		return DispositionNone, err
	}
	b.log.Debug("Archived to bucket", zap.String("source", src), zap.String("object", key))
	return DispositionMoved, nil
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}
