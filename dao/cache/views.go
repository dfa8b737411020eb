package cache

import (
	"Streamify/config"
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ViewStorage 播放去重，窗口期内同一观众只计一次
type ViewStorage struct {
	redis *redis.Client
	cfg   *config.Engagement
}

func NewViewStorage(rds *redis.Client, conf *config.Config) *ViewStorage {
	return &ViewStorage{redis: rds, cfg: conf.Engagement}
}

func (v *ViewStorage) FirstView(ctx context.Context, viewerID, videoID int64) (bool, error) {
	return v.redis.SetNX(ctx, v.name(viewerID, videoID), 1, v.cfg.ViewTTL()).Result()
}

func (v *ViewStorage) name(viewerID, videoID int64) string {
	return fmt.Sprintf("streamify:view:%d:%d", videoID, viewerID)
}
