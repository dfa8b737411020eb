package job

import (
	"Streamify/config"
	"Streamify/pkg/log"
	"Streamify/pkg/upload"
	"Streamify/pkg/utils"
	"context"
	"errors"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reconcileTimeout = 5 * time.Minute

// Reconciler 用明细表重算冗余计数
type Reconciler interface {
	Reconcile(ctx context.Context) (int64, error)
}

// Scheduler 后台定时任务：计数校正、临时文件清理
type Scheduler struct {
	cron       *cron.Cron
	conf       *config.Job
	reconciler Reconciler
	tempDir    string
	staleTTL   time.Duration
}

func NewScheduler(conf *config.Config, reconciler Reconciler, stager *upload.Stager) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		conf:       conf.Job,
		reconciler: reconciler,
		tempDir:    stager.Dir(),
		staleTTL:   conf.Upload.StaleTTL(),
	}
}

// Start 注册任务并启动，cron 表达式非法时返回错误
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.conf.Reconcile, s.guard("reconcile", s.runReconcile)); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.conf.Sweep, s.guard("sweep", s.runSweep)); err != nil {
		return err
	}
	s.cron.Start()
	log.L.Info("job scheduler started",
		zap.String("reconcile", s.conf.Reconcile),
		zap.String("sweep", s.conf.Sweep),
	)
	return nil
}

// Stop 返回的 context 在运行中的任务结束后关闭
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) guard(name string, fn func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				log.L.Error("job panic", zap.String("job", name), zap.String("trace", utils.PanicTrace(r)))
			}
		}()
		fn()
	}
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()
	if _, err := s.Reconcile(ctx); err != nil {
		log.L.Error("reconcile counters", zap.Error(err))
	}
}

func (s *Scheduler) runSweep() {
	if _, err := s.Sweep(time.Now()); err != nil {
		log.L.Error("sweep temp uploads", zap.Error(err))
	}
}

// Reconcile 重算 likes / dislikes / subscribers_count
func (s *Scheduler) Reconcile(ctx context.Context) (int64, error) {
	start := time.Now()
	fixed, err := s.reconciler.Reconcile(ctx)
	if err != nil {
		return fixed, err
	}
	log.L.Info("counters reconciled", zap.Int64("rows", fixed), zap.Duration("cost", time.Since(start)))
	return fixed, nil
}

// Sweep 清理过期的上传临时文件，目录不存在时视为无事可做
func (s *Scheduler) Sweep(now time.Time) (int, error) {
	removed, err := upload.Sweep(s.tempDir, s.staleTTL, now)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		log.L.Info("stale uploads removed", zap.Int("count", removed), zap.String("dir", s.tempDir))
	}
	return removed, nil
}
