package service

import (
	"Streamify/models"
	"Streamify/pkg/pipeline"
	"Streamify/pkg/response"
	"Streamify/pkg/snowflake"
	"Streamify/types"
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var _ IPlaylistService = (*PlaylistService)(nil)

type IPlaylistService interface {
	Create(ctx context.Context, actorID int64, req *types.CreatePlaylistReq) (*models.Playlist, error)
	// ListByUser 用户创建的播放列表，带视频数与总播放量
	ListByUser(ctx context.Context, ownerID int64, pg pipeline.Pagination) (*pipeline.Page[types.PlaylistView], error)
	// Get 播放列表详情，videos 只包含已发布的视频
	Get(ctx context.Context, playlistID int64, pg pipeline.Pagination) (*types.PlaylistDetail, error)
	Update(ctx context.Context, actorID, playlistID int64, req *types.UpdatePlaylistReq) (*types.PlaylistView, error)
	Delete(ctx context.Context, actorID, playlistID int64) error
	AddVideo(ctx context.Context, actorID, playlistID, videoID int64) (*types.PlaylistView, error)
	RemoveVideo(ctx context.Context, actorID, playlistID, videoID int64) (*types.PlaylistView, error)
}

type PlaylistService struct {
	Playlists PlaylistRepository
	Videos    VideoRepository
	Users     UserRepository
	Views     ViewRepository
}

func (s *PlaylistService) Create(ctx context.Context, actorID int64, req *types.CreatePlaylistReq) (*models.Playlist, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, response.Validation("Playlist name is required")
	}
	playlist := &models.Playlist{
		ID:          snowflake.GenID(),
		OwnerID:     actorID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.Playlists.Create(ctx, playlist); err != nil {
		return nil, response.Wrap(err, "Failed to create playlist")
	}
	return playlist, nil
}

func (s *PlaylistService) ListByUser(ctx context.Context, ownerID int64, pg pipeline.Pagination) (*pipeline.Page[types.PlaylistView], error) {
	if _, err := loadByID[models.User](ctx, s.Users.FindByID, ownerID, "User"); err != nil {
		return nil, err
	}
	page, err := s.Views.Playlists(ctx, UserPlaylistsPipeline(ownerID, pg))
	return page, response.Wrap(err, "Failed to load playlists")
}

func (s *PlaylistService) view(ctx context.Context, playlistID int64) (*types.PlaylistView, error) {
	view, err := s.Views.Playlist(ctx, PlaylistDetailPipeline(playlistID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NotFound("Playlist not found")
	}
	return view, response.Wrap(err, "Failed to load playlist")
}

func (s *PlaylistService) Get(ctx context.Context, playlistID int64, pg pipeline.Pagination) (*types.PlaylistDetail, error) {
	if playlistID <= 0 {
		return nil, response.Validation("Invalid Playlist id")
	}

	var (
		header *types.PlaylistView
		videos *pipeline.Page[types.VideoCard]
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		header, err = s.view(ctx, playlistID)
		return err
	})
	eg.Go(func() (err error) {
		videos, err = s.Views.VideoCards(ctx, PlaylistVideosPipeline(playlistID, pg))
		return response.Wrap(err, "Failed to load playlist videos")
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &types.PlaylistDetail{PlaylistView: *header, Videos: videos}, nil
}

func (s *PlaylistService) owned(ctx context.Context, actorID, playlistID int64) (*models.Playlist, error) {
	return loadOwned(ctx, s.Playlists.FindByID, func(p *models.Playlist) int64 { return p.OwnerID }, playlistID, actorID, "Playlist")
}

func (s *PlaylistService) Update(ctx context.Context, actorID, playlistID int64, req *types.UpdatePlaylistReq) (*types.PlaylistView, error) {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, response.Validation("Playlist name cannot be empty")
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if len(fields) == 0 {
		return nil, response.Validation("At least one field is required")
	}

	if err := s.Playlists.UpdateFields(ctx, playlistID, fields); err != nil {
		return nil, response.Wrap(err, "Failed to update playlist")
	}
	return s.view(ctx, playlistID)
}

func (s *PlaylistService) Delete(ctx context.Context, actorID, playlistID int64) error {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return err
	}
	return response.Wrap(s.Playlists.Delete(ctx, playlistID), "Failed to delete playlist")
}

func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID int64) (*types.PlaylistView, error) {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.Videos, actorID, videoID); err != nil {
		return nil, err
	}

	err := s.Playlists.AddVideo(ctx, playlistID, videoID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, response.Conflict("Video already exists in playlist")
	}
	if err != nil {
		return nil, response.Wrap(err, "Failed to add video to playlist")
	}
	return s.view(ctx, playlistID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID int64) (*types.PlaylistView, error) {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}
	if videoID <= 0 {
		return nil, response.Validation("Invalid Video id")
	}

	removed, err := s.Playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, response.Wrap(err, "Failed to remove video from playlist")
	}
	if !removed {
		return nil, response.NotFound("Video not found in playlist")
	}
	return s.view(ctx, playlistID)
}
