package service

import (
	"Streamify/config"
	"Streamify/pkg/log"
	"Streamify/pkg/response"
	"Streamify/pkg/snowflake"
	"Streamify/pkg/storage"
	"Streamify/pkg/upload"
	"Streamify/pkg/utils"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// MediaRef 已上传的远端对象
type MediaRef struct {
	PublicID string
	Kind     storage.Kind
}

var _ IMediaService = (*MediaService)(nil)

type IMediaService interface {
	// NewBatch 开启一批上传，失败时由 Rollback 删除已上传的对象
	NewBatch() *Batch
	// Delete 尽力删除远端对象，失败只记日志
	Delete(ctx context.Context, refs ...MediaRef)
}

type MediaService struct {
	Store  storage.Store
	Prober storage.Prober
	Config *config.Config
}

func (s *MediaService) NewBatch() *Batch {
	return &Batch{svc: s}
}

func (s *MediaService) Delete(ctx context.Context, refs ...MediaRef) {
	// 请求结束后仍要完成删除
	ctx = context.WithoutCancel(ctx)

	var wg conc.WaitGroup
	for _, ref := range refs {
		if ref.PublicID == "" {
			continue
		}
		wg.Go(func() {
			dctx, cancel := context.WithTimeout(ctx, s.Config.Upload.UploadTimeout())
			defer cancel()
			if err := s.Store.Delete(dctx, ref.PublicID, ref.Kind); err != nil {
				log.L.Warn("delete remote media failed",
					zap.String("public_id", ref.PublicID),
					zap.String("kind", string(ref.Kind)),
					zap.Error(err),
				)
			}
		})
	}
	wg.Wait()
}

// Batch 两阶段上传：临时文件 -> 远端对象 -> 数据库行
type Batch struct {
	svc       *MediaService
	mu        sync.Mutex
	uploaded  []MediaRef
	committed bool
}

// Put 上传暂存文件，无论成功与否都会删除本地文件
func (b *Batch) Put(ctx context.Context, f *upload.File) (*storage.Object, error) {
	defer f.Remove()

	s := b.svc
	ctx, cancel := context.WithTimeout(ctx, s.Config.Upload.UploadTimeout())
	defer cancel()

	var duration float64
	if f.Kind == storage.KindVideo && s.Prober != nil {
		d, err := s.Prober.Duration(ctx, f.Path)
		if err != nil {
			return nil, b.upstream(ctx, err)
		}
		duration = d
	}

	name := utils.GenHashID(s.Config.App.HashSalt, snowflake.GenID())
	key := storage.ObjectKey(s.Config.Storage.Folder, f.Kind, name, f.Ext, time.Now())
	obj, err := s.Store.Upload(ctx, f.Path, key, f.ContentType)
	if err != nil {
		return nil, b.upstream(ctx, err)
	}
	obj.Duration = duration

	b.mu.Lock()
	b.uploaded = append(b.uploaded, MediaRef{PublicID: obj.PublicID, Kind: f.Kind})
	b.mu.Unlock()
	return obj, nil
}

func (b *Batch) upstream(ctx context.Context, err error) error {
	log.L.Error("media upload failed", zap.Error(err))
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return response.Upstream("Media upload timed out", err)
	}
	return response.Upstream("Failed to upload media", err)
}

// Commit 数据库写入成功后调用
func (b *Batch) Commit() {
	b.mu.Lock()
	b.committed = true
	b.mu.Unlock()
}

// Rollback 未提交时删除本批已上传的对象，可 defer 调用
func (b *Batch) Rollback(ctx context.Context) {
	b.mu.Lock()
	if b.committed || len(b.uploaded) == 0 {
		b.mu.Unlock()
		return
	}
	refs := b.uploaded
	b.uploaded = nil
	b.mu.Unlock()

	b.svc.Delete(ctx, refs...)
}
