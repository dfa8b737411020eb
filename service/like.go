package service

import (
	"Streamify/models"
	"Streamify/pkg/pipeline"
	"Streamify/pkg/response"
	"Streamify/types"
	"context"
)

var _ ILikeService = (*LikeService)(nil)

type ILikeService interface {
	ToggleVideo(ctx context.Context, actorID int64, req *types.ToggleVideoLikeReq) (*types.ToggleResult, error)
	ToggleComment(ctx context.Context, actorID int64, req *types.ToggleCommentLikeReq) (*types.ToggleResult, error)
	// LikedVideos 当前用户点赞过的已发布视频
	LikedVideos(ctx context.Context, actorID int64, pg pipeline.Pagination) (*pipeline.Page[types.LikedVideo], error)
}

// LikeService 只能对自己可见的视频及其评论点赞
type LikeService struct {
	Engagement IEngagementService
	Videos     VideoRepository
	Comments   CommentRepository
	Views      ViewRepository
}

func (s *LikeService) ToggleVideo(ctx context.Context, actorID int64, req *types.ToggleVideoLikeReq) (*types.ToggleResult, error) {
	id, err := ParseID(req.VideoID, "video id")
	if err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.Videos, actorID, id); err != nil {
		return nil, err
	}
	return s.Engagement.Toggle(ctx, actorID, models.VideoTarget(id), models.LikeType(req.Type))
}

func (s *LikeService) ToggleComment(ctx context.Context, actorID int64, req *types.ToggleCommentLikeReq) (*types.ToggleResult, error) {
	id, err := ParseID(req.CommentID, "comment id")
	if err != nil {
		return nil, err
	}
	comment, err := loadByID(ctx, s.Comments.FindByID, id, "Comment")
	if err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.Videos, actorID, comment.VideoID); err != nil {
		return nil, err
	}
	return s.Engagement.Toggle(ctx, actorID, models.CommentTarget(id), models.LikeType(req.Type))
}

func (s *LikeService) LikedVideos(ctx context.Context, actorID int64, pg pipeline.Pagination) (*pipeline.Page[types.LikedVideo], error) {
	if actorID <= 0 {
		return nil, response.Unauthorized("Unauthorized request")
	}
	page, err := s.Views.LikedVideos(ctx, LikedVideosPipeline(actorID, pg))
	return page, response.Wrap(err, "Failed to load liked videos")
}
