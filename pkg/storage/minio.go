package storage

import (
	"Streamify/config"
	"Streamify/pkg/log"
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type MinioStore struct {
	client    *minio.Client
	bucket    string
	folder    string
	publicURL string
}

var _ Store = (*MinioStore)(nil)

func NewMinioStore(ctx context.Context, cfg *config.Storage) (*MinioStore, error) {
	c := cfg.Minio
	client, err := minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "create minio client")
	}

	exists, err := client.BucketExists(ctx, c.Bucket)
	if err != nil {
		return nil, errors.WithMessage(err, "check minio bucket")
	}
	if !exists {
		if err := client.MakeBucket(ctx, c.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, errors.WithMessage(err, "create minio bucket")
		}
		log.L.Info("minio bucket created", zap.String("bucket", c.Bucket))
	}

	base := c.PublicURL
	if base == "" {
		scheme := "http://"
		if c.UseSSL {
			scheme = "https://"
		}
		base = scheme + c.Endpoint
	}
	return &MinioStore{
		client:    client,
		bucket:    c.Bucket,
		folder:    cfg.Folder,
		publicURL: joinURL(base, c.Bucket),
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, localPath, key, contentType string) (*Object, error) {
	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.WithMessagef(err, "minio put %s", key)
	}
	return &Object{URL: joinURL(s.publicURL, key), PublicID: key}, nil
}

func (s *MinioStore) Delete(ctx context.Context, publicID string, kind Kind) error {
	if err := checkKey(s.folder, publicID, kind); err != nil {
		return err
	}
	err := s.client.RemoveObject(ctx, s.bucket, publicID, minio.RemoveObjectOptions{})
	return errors.WithMessagef(err, "minio delete %s", publicID)
}
