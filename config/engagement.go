package config

import "time"

type Engagement struct {
	// DistributedLock 为 true 时点赞切换先获取 redis 分布式锁
	DistributedLock bool `json:"distributed_lock" yaml:"distributed_lock"`
	LockTTL         int  `json:"lock_ttl" yaml:"lock_ttl"`       // 秒
	ViewWindow      int  `json:"view_window" yaml:"view_window"` // 秒，同一用户重复观看不重复计数
}

func (e *Engagement) LockExpiry() time.Duration { return seconds(e.LockTTL) }
func (e *Engagement) ViewTTL() time.Duration    { return seconds(e.ViewWindow) }

// Job 定时任务 cron 表达式
type Job struct {
	Reconcile string `json:"reconcile" yaml:"reconcile"`
	Sweep     string `json:"sweep" yaml:"sweep"`
}
