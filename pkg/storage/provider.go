package storage

import (
	"Streamify/config"
	"context"
	"time"

	"github.com/pkg/errors"
)

// NewStore 按 storage.driver 选择实现
func NewStore(cfg *config.Storage) (Store, error) {
	switch cfg.Driver {
	case config.StorageDriverOss:
		if cfg.Oss == nil {
			return nil, errors.New("storage: oss section missing")
		}
		return NewOssStore(cfg), nil
	case config.StorageDriverMinio:
		if cfg.Minio == nil {
			return nil, errors.New("storage: minio section missing")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return NewMinioStore(ctx, cfg)
	}
	return nil, errors.Errorf("storage: unknown driver %q", cfg.Driver)
}

func NewProber() Prober {
	return FFProbe{}
}
