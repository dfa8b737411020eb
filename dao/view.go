package dao

import (
	"Streamify/pkg/pipeline"
	"Streamify/service"
	"Streamify/types"
	"context"

	"gorm.io/gorm"
)

var _ service.ViewRepository = (*ViewDAO)(nil)

// ViewDAO 执行 service 层构建的只读 pipeline
type ViewDAO struct {
	Db *gorm.DB
}

func NewViewDAO(db *gorm.DB) *ViewDAO {
	return &ViewDAO{Db: db}
}

func (d *ViewDAO) VideoCards(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.VideoCard], error) {
	return pipeline.Run[types.VideoCard](ctx, d.Db, p)
}

func (d *ViewDAO) VideoDetail(ctx context.Context, p *pipeline.Pipeline) (*types.VideoDetail, error) {
	return pipeline.One[types.VideoDetail](ctx, d.Db, p)
}

func (d *ViewDAO) LikedVideos(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.LikedVideo], error) {
	return pipeline.Run[types.LikedVideo](ctx, d.Db, p)
}

func (d *ViewDAO) Comments(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.CommentView], error) {
	return pipeline.Run[types.CommentView](ctx, d.Db, p)
}

func (d *ViewDAO) Playlists(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.PlaylistView], error) {
	return pipeline.Run[types.PlaylistView](ctx, d.Db, p)
}

func (d *ViewDAO) Playlist(ctx context.Context, p *pipeline.Pipeline) (*types.PlaylistView, error) {
	return pipeline.One[types.PlaylistView](ctx, d.Db, p)
}

func (d *ViewDAO) Channels(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.ChannelCard], error) {
	return pipeline.Run[types.ChannelCard](ctx, d.Db, p)
}

func (d *ViewDAO) ChannelProfile(ctx context.Context, p *pipeline.Pipeline) (*types.ChannelProfile, error) {
	return pipeline.One[types.ChannelProfile](ctx, d.Db, p)
}

func (d *ViewDAO) WatchHistory(ctx context.Context, p *pipeline.Pipeline) (*pipeline.Page[types.HistoryItem], error) {
	return pipeline.Run[types.HistoryItem](ctx, d.Db, p)
}
