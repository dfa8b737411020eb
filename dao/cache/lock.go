package cache

import (
	"Streamify/config"
	"Streamify/pkg/log"
	"Streamify/service"
	"context"

	"github.com/go-redsync/redsync/v4"
	"go.uber.org/zap"
)

const lockPrefix = "streamify:lock:"

// MutexLocker 基于 redsync 的跨实例互斥锁，只尝试一次，拿不到即返回
type MutexLocker struct {
	rs  *redsync.Redsync
	cfg *config.Engagement
}

// NewEngagementLocker 未开启 distributed_lock 时返回 nil，点赞切换只依赖数据库行锁
func NewEngagementLocker(rs *redsync.Redsync, conf *config.Config) service.Locker {
	if !conf.Engagement.DistributedLock {
		return nil
	}
	return &MutexLocker{rs: rs, cfg: conf.Engagement}
}

func (l *MutexLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.rs.NewMutex(lockPrefix+key,
		redsync.WithExpiry(l.cfg.LockExpiry()),
		redsync.WithTries(1),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		if _, err := mutex.UnlockContext(context.WithoutCancel(ctx)); err != nil {
			log.L.Warn("release lock failed", zap.String("key", key), zap.Error(err))
		}
	}, nil
}
