package service

import (
	"Streamify/models"
	"Streamify/pkg/pipeline"
	"Streamify/types"
	"context"
	"time"
)

// 查询不到时统一返回 gorm.ErrRecordNotFound

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// FindByLogin username 或 email 任一匹配
	FindByLogin(ctx context.Context, username, email string) (*models.User, error)
	IsTaken(ctx context.Context, username, email string) (bool, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	// RotateRefreshToken 库中仍是 old 时才替换为 next，返回是否替换
	RotateRefreshToken(ctx context.Context, id int64, old, next string) (bool, error)
	RecordWatch(ctx context.Context, userID, videoID int64, at time.Time) error
}

type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	FindByID(ctx context.Context, id int64) (*models.Video, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	IncrViews(ctx context.Context, id int64) error
	// DeleteCascade 同一事务删除视频及其点赞、评论、评论点赞、播放列表条目、观看记录
	DeleteCascade(ctx context.Context, id int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id int64) (*models.Comment, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	AppendReply(ctx context.Context, id int64, reply models.Reply) error
	// DeleteCascade 同一事务删除评论及其点赞
	DeleteCascade(ctx context.Context, id int64) error
}

type SubscriptionRepository interface {
	// Toggle 锁定频道行后切换订阅并维护 subscribers_count
	Toggle(ctx context.Context, subscriberID, channelID int64) (subscribed bool, count int64, err error)
}

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	FindByID(ctx context.Context, id int64) (*models.Playlist, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	AddVideo(ctx context.Context, playlistID, videoID int64) error
	RemoveVideo(ctx context.Context, playlistID, videoID int64) (bool, error)
}

// ViewRepository 执行读模型 pipeline
type ViewRepository interface {
	VideoCards(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.VideoCard], error)
	VideoDetail(ctx context.Context, p *pipeline.Pipeline) (*types.VideoDetail, error)
	LikedVideos(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.LikedVideo], error)
	Comments(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.CommentView], error)
	Playlists(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.PlaylistView], error)
	Playlist(ctx context.Context, p *pipeline.Pipeline) (*types.PlaylistView, error)
	Channels(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.ChannelCard], error)
	ChannelProfile(ctx context.Context, p *pipeline.Pipeline) (*types.ChannelProfile, error)
	WatchHistory(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.HistoryItem], error)
}

// ViewCounter 同一观众在窗口期内只计一次播放
type ViewCounter interface {
	FirstView(ctx context.Context, viewerID, videoID int64) (bool, error)
}

// Locker 跨实例互斥
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
