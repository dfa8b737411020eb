package storage

import (
	"Streamify/config"
	"context"
	"fmt"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/pkg/errors"
)

type OssStore struct {
	Client     *oss.Client
	BucketName string
	Folder     string
	PublicHost string
}

var _ Store = (*OssStore)(nil)

func NewOssStore(cfg *config.Storage) *OssStore {
	c := cfg.Oss
	ossCfg := oss.LoadDefaultConfig().
		WithEndpoint(c.Endpoint).
		WithRegion(c.Region).
		WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				c.AccessKeyID,
				c.AccessKeySecret,
			),
		)

	host := c.PublicHost
	if host == "" {
		host = fmt.Sprintf("https://%s.%s", c.Bucket, c.Endpoint)
	}
	return &OssStore{
		Client:     oss.NewClient(ossCfg),
		BucketName: c.Bucket,
		Folder:     cfg.Folder,
		PublicHost: host,
	}
}

// Upload 上传本地文件
func (s *OssStore) Upload(ctx context.Context, localPath, key, contentType string) (*Object, error) {
	req := &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(key),
	}
	if contentType != "" {
		req.ContentType = oss.Ptr(contentType)
	}
	if _, err := s.Client.PutObjectFromFile(ctx, req, localPath); err != nil {
		return nil, errors.WithMessagef(err, "oss put %s", key)
	}
	return &Object{URL: joinURL(s.PublicHost, key), PublicID: key}, nil
}

// Delete 删除对象
func (s *OssStore) Delete(ctx context.Context, publicID string, kind Kind) error {
	if err := checkKey(s.Folder, publicID, kind); err != nil {
		return err
	}
	_, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(publicID),
	})
	return errors.WithMessagef(err, "oss delete %s", publicID)
}
