package service

import (
	"Streamify/models"
	"Streamify/pkg/response"
	"context"
	"errors"

	"gorm.io/gorm"
)

// loadOwned 读取实体并校验归属：不存在返回 404，不是本人返回 403
func loadOwned[T any](ctx context.Context, find func(context.Context, int64) (*T, error), owner func(*T) int64,
	id, actorID int64, name string) (*T, error) {
	if id <= 0 {
		return nil, response.Validation("Invalid %s id", name)
	}
	item, err := find(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NotFound("%s not found", name)
	}
	if err != nil {
		return nil, response.Wrap(err, "Failed to load "+name)
	}
	if owner(item) != actorID {
		return nil, response.Forbidden("You are not the owner of this %s", name)
	}
	return item, nil
}

// loadByID 只校验存在
func loadByID[T any](ctx context.Context, find func(context.Context, int64) (*T, error), id int64, name string) (*T, error) {
	if id <= 0 {
		return nil, response.Validation("Invalid %s id", name)
	}
	item, err := find(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NotFound("%s not found", name)
	}
	if err != nil {
		return nil, response.Wrap(err, "Failed to load "+name)
	}
	return item, nil
}

// hiddenFrom 未发布或私有视频只有作者本人可见
func hiddenFrom(ownerID int64, published bool, visibility models.Visibility, viewerID int64) bool {
	return ownerID != viewerID && (!published || visibility == models.VisibilityPrivate)
}

// visibleVideo 对不可见的视频返回 404，不暴露其存在
func visibleVideo(ctx context.Context, videos VideoRepository, viewerID, videoID int64) (*models.Video, error) {
	video, err := loadByID(ctx, videos.FindByID, videoID, "Video")
	if err != nil {
		return nil, err
	}
	if hiddenFrom(video.OwnerID, video.IsPublished, video.Visibility, viewerID) {
		return nil, response.NotFound("Video not found")
	}
	return video, nil
}
