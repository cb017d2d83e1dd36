// Package storage keeps uploaded images in a gocloud.dev blob bucket, so the
// same code runs against a local directory, memory, S3 or GCS.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path"
	"strings"

	"storeapi/config"
	domainerrors "storeapi/internal/domain/errors"
	"storeapi/internal/domain/service"
	"storeapi/internal/errors"
	"storeapi/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

const (
	defaultBucketURL = "mem://"
	uploadsRoute     = "/uploads/"

	// checksumMetadataKey holds the hex SHA256 of the object body.
	checksumMetadataKey = "sha256"
)

type blobStore struct {
	bucket    *blob.Bucket
	keyPrefix string
	baseURL   string
	logger    *slog.Logger
}

// Params defines the dependencies of the image store.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewImageStore opens the configured bucket and closes it on shutdown.
func NewImageStore(params Params) (service.ImageStore, error) {
	bucketURL := defaultBucketURL
	var storageCfg config.StorageConfig
	if params.Config.Storage != nil {
		storageCfg = *params.Config.Storage
		if storageCfg.BucketURL != "" {
			bucketURL = storageCfg.BucketURL
		}
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	baseURL := strings.TrimRight(storageCfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = strings.TrimRight(params.Config.HTTP.PublicBaseURL, "/") + strings.TrimRight(uploadsRoute, "/")
	}

	params.Logger.Info("Image storage ready", slog.String("bucket_url", bucketURL))

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobStore(bucket, storageCfg.KeyPrefix, baseURL, params.Logger), nil
}

// NewBlobStore wraps an already opened bucket.
func NewBlobStore(bucket *blob.Bucket, keyPrefix, baseURL string, logger *slog.Logger) service.ImageStore {
	return &blobStore{
		bucket:    bucket,
		keyPrefix: keyPrefix,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// Put writes data under <prefix><uuid><ext> and returns baseURL/<key>.
func (s *blobStore) Put(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := s.keyPrefix + uuid.NewString() + strings.ToLower(path.Ext(filename))

	checksum := util.ContentChecksum(data)
	opts := &blob.WriterOptions{
		ContentType: contentType,
		Metadata:    map[string]string{checksumMetadataKey: checksum},
	}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return "", errors.Wrapf(err, "failed to write object %s", key)
	}

	s.logger.DebugContext(ctx, "Image stored",
		slog.String("key", key),
		slog.String("size", util.FormatBytes(int64(len(data)))),
		slog.String("sha256", checksum),
	)

	return s.baseURL + "/" + key, nil
}

// Open returns a reader for key along with its stored content type.
func (s *blobStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", domainerrors.ErrNotFound.WithMessage("file not found")
		}

		return nil, "", errors.Wrapf(err, "failed to open object %s", key)
	}

	return reader, reader.ContentType(), nil
}
