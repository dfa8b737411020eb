package service

import (
	"Streamify/models"
	"Streamify/pkg/log"
	"Streamify/pkg/pipeline"
	"Streamify/pkg/response"
	"Streamify/pkg/snowflake"
	"Streamify/pkg/storage"
	"Streamify/pkg/upload"
	"Streamify/types"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FieldVideoFile = "videoFile"
	FieldThumbnail = "thumbnail"
)

var _ IVideoService = (*VideoService)(nil)

type IVideoService interface {
	// Feed 已发布的公开视频，支持全文检索、作者过滤与排序
	Feed(ctx context.Context, q *types.VideoFeedQuery) (*pipeline.Page[types.VideoCard], error)
	// Detail 返回视频详情，同时计数播放并写入观看记录
	Detail(ctx context.Context, viewerID, videoID int64) (*types.VideoDetail, error)
	Upload(ctx context.Context, ownerID int64, req *types.UploadVideoReq, files upload.Files) (*models.Video, error)
	Update(ctx context.Context, actorID, videoID int64, req *types.UpdateVideoReq) (*models.Video, error)
	UpdateThumbnail(ctx context.Context, actorID, videoID int64, file *upload.File) (*models.Video, error)
	TogglePublish(ctx context.Context, actorID, videoID int64) (*models.Video, error)
	Delete(ctx context.Context, actorID, videoID int64) error
}

type VideoService struct {
	Videos      VideoRepository
	Users       UserRepository
	Views       ViewRepository
	ViewCounter ViewCounter
	Media       IMediaService
}

func (s *VideoService) Feed(ctx context.Context, q *types.VideoFeedQuery) (*pipeline.Page[types.VideoCard], error) {
	pg, err := pipeline.ParsePagination(q.Page, q.Limit)
	if err != nil {
		return nil, err
	}
	sort, err := pipeline.ParseSort("v", q.SortBy, q.SortType)
	if err != nil {
		return nil, err
	}
	var ownerID int64
	if q.UserID != "" {
		if ownerID, err = ParseID(q.UserID, "userId"); err != nil {
			return nil, err
		}
	}

	page, err := s.Views.VideoCards(ctx, VideoFeedPipeline(q.Query, ownerID, sort, pg))
	return page, response.Wrap(err, "Failed to load videos")
}

func (s *VideoService) Detail(ctx context.Context, viewerID, videoID int64) (*types.VideoDetail, error) {
	if videoID <= 0 {
		return nil, response.Validation("Invalid video id")
	}
	detail, err := s.Views.VideoDetail(ctx, VideoDetailPipeline(videoID, viewerID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NotFound("Video not found")
	}
	if err != nil {
		return nil, response.Wrap(err, "Failed to load video")
	}
	if hiddenFrom(detail.Owner.ID, detail.IsPublished, detail.Visibility, viewerID) {
		return nil, response.NotFound("Video not found")
	}

	count := true
	if viewerID > 0 && s.ViewCounter != nil {
		first, err := s.ViewCounter.FirstView(ctx, viewerID, videoID)
		if err != nil {
			log.L.Warn("view dedupe failed", zap.Int64("video_id", videoID), zap.Error(err))
		} else {
			count = first
		}
	}
	if count {
		if err := s.Videos.IncrViews(ctx, videoID); err != nil {
			return nil, response.Wrap(err, "Failed to count view")
		}
		detail.Views++
	}

	if viewerID > 0 {
		if err := s.Users.RecordWatch(ctx, viewerID, videoID, time.Now()); err != nil {
			log.L.Warn("record watch history failed",
				zap.Int64("user_id", viewerID), zap.Int64("video_id", videoID), zap.Error(err))
		}
	}
	return detail, nil
}

// Upload 上传视频与封面后写库，写库失败会删除已上传的对象
func (s *VideoService) Upload(ctx context.Context, ownerID int64, req *types.UploadVideoReq, files upload.Files) (*models.Video, error) {
	defer files.Cleanup()

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, response.Validation("All fields are required")
	}
	visibility := models.VisibilityPublic
	if req.Visibility != "" {
		visibility = models.Visibility(req.Visibility)
		if !visibility.Valid() {
			return nil, response.Validation("visibility must be one of public, private, unlisted")
		}
	}
	videoFile, thumbnail := files[FieldVideoFile], files[FieldThumbnail]
	if videoFile == nil {
		return nil, response.Validation("%s is required", FieldVideoFile)
	}
	if thumbnail == nil {
		return nil, response.Validation("%s is required", FieldThumbnail)
	}

	batch := s.Media.NewBatch()
	defer batch.Rollback(ctx)

	vObj, err := batch.Put(ctx, videoFile)
	if err != nil {
		return nil, err
	}
	tObj, err := batch.Put(ctx, thumbnail)
	if err != nil {
		return nil, err
	}

	video := &models.Video{
		ID:                snowflake.GenID(),
		OwnerID:           ownerID,
		Title:             title,
		Description:       description,
		URL:               vObj.URL,
		URLPublicID:       vObj.PublicID,
		Thumbnail:         tObj.URL,
		ThumbnailPublicID: tObj.PublicID,
		Duration:          vObj.Duration,
		Visibility:        visibility,
		Category:          strings.TrimSpace(req.Category),
		Tags:              normalizeTags(req.Tags),
		IsPublished:       true,
	}
	if err := s.Videos.Create(ctx, video); err != nil {
		return nil, response.Wrap(err, "Failed to save video")
	}
	batch.Commit()

	log.L.Info("video uploaded", zap.Int64("video_id", video.ID), zap.Int64("owner_id", ownerID))
	return video, nil
}

func (s *VideoService) owned(ctx context.Context, actorID, videoID int64) (*models.Video, error) {
	return loadOwned(ctx, s.Videos.FindByID, func(v *models.Video) int64 { return v.OwnerID }, videoID, actorID, "Video")
}

func (s *VideoService) Update(ctx context.Context, actorID, videoID int64, req *types.UpdateVideoReq) (*models.Video, error) {
	if _, err := s.owned(ctx, actorID, videoID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, response.Validation("title cannot be empty")
		}
		fields["title"] = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, response.Validation("description cannot be empty")
		}
		fields["description"] = description
	}
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Visibility != nil {
		v := models.Visibility(*req.Visibility)
		if !v.Valid() {
			return nil, response.Validation("visibility must be one of public, private, unlisted")
		}
		fields["visibility"] = v
	}
	if req.Tags != nil {
		fields["tags"] = normalizeTags(*req.Tags)
	}
	if len(fields) == 0 {
		return nil, response.Validation("At least one field is required")
	}

	if err := s.Videos.UpdateFields(ctx, videoID, fields); err != nil {
		return nil, response.Wrap(err, "Failed to update video")
	}
	return s.Videos.FindByID(ctx, videoID)
}

// UpdateThumbnail 校验归属后才上传新封面，成功后删除旧封面
func (s *VideoService) UpdateThumbnail(ctx context.Context, actorID, videoID int64, file *upload.File) (*models.Video, error) {
	defer file.Remove()

	video, err := s.owned(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, response.Validation("%s is required", FieldThumbnail)
	}

	batch := s.Media.NewBatch()
	defer batch.Rollback(ctx)

	obj, err := batch.Put(ctx, file)
	if err != nil {
		return nil, err
	}
	if err := s.Videos.UpdateFields(ctx, videoID, map[string]any{
		"thumbnail":           obj.URL,
		"thumbnail_public_id": obj.PublicID,
	}); err != nil {
		return nil, response.Wrap(err, "Failed to update thumbnail")
	}
	batch.Commit()

	s.Media.Delete(ctx, MediaRef{PublicID: video.ThumbnailPublicID, Kind: storage.KindImage})
	video.Thumbnail, video.ThumbnailPublicID = obj.URL, obj.PublicID
	return video, nil
}

func (s *VideoService) TogglePublish(ctx context.Context, actorID, videoID int64) (*models.Video, error) {
	video, err := s.owned(ctx, actorID, videoID)
	if err != nil {
		return nil, err
	}
	if err := s.Videos.UpdateFields(ctx, videoID, map[string]any{"is_published": !video.IsPublished}); err != nil {
		return nil, response.Wrap(err, "Failed to toggle publish status")
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

// Delete 事务内级联删除，提交后再删除远端文件
func (s *VideoService) Delete(ctx context.Context, actorID, videoID int64) error {
	video, err := s.owned(ctx, actorID, videoID)
	if err != nil {
		return err
	}
	if err := s.Videos.DeleteCascade(ctx, videoID); err != nil {
		return response.Wrap(err, "Failed to delete video")
	}

	s.Media.Delete(ctx,
		MediaRef{PublicID: video.URLPublicID, Kind: storage.KindVideo},
		MediaRef{PublicID: video.ThumbnailPublicID, Kind: storage.KindImage},
	)
	log.L.Info("video deleted", zap.Int64("video_id", videoID), zap.Int64("owner_id", actorID))
	return nil
}

// normalizeTags 去空白、去重，支持逗号分隔
func normalizeTags(raw []string) datatypes.JSONSlice[string] {
	seen := map[string]bool{}
	tags := datatypes.JSONSlice[string]{}
	for _, item := range raw {
		for _, t := range strings.Split(item, ",") {
			t = strings.TrimSpace(t)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}

// ParseID 解析正整数 ID，失败返回 400
func ParseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.Validation("Invalid %s", name)
	}
	return id, nil
}
