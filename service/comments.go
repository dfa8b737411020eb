package service

import (
	"Streamify/models"
	"Streamify/pkg/pipeline"
	"Streamify/pkg/response"
	"Streamify/pkg/snowflake"
	"Streamify/types"
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

var _ ICommentService = (*CommentService)(nil)

type ICommentService interface {
	// List 视频下的评论，按时间倒序
	List(ctx context.Context, viewerID, videoID int64, pg pipeline.Pagination) (*pipeline.Page[types.CommentView], error)
	Create(ctx context.Context, actorID, videoID int64, text string) (*models.Comment, error)
	Edit(ctx context.Context, actorID, commentID int64, text string) (*models.Comment, error)
	Delete(ctx context.Context, actorID, commentID int64) error
	// Reply 在评论下追加一条回复
	Reply(ctx context.Context, actorID, commentID int64, text string) (*models.Reply, error)
}

type CommentService struct {
	Comments CommentRepository
	Videos   VideoRepository
	Views    ViewRepository
}

func commentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", response.Validation("Comment text is required")
	}
	if utf8.RuneCountInString(text) > models.CommentMaxLength {
		return "", response.Validation("Comment must be at most %d characters", models.CommentMaxLength)
	}
	return text, nil
}

func (s *CommentService) List(ctx context.Context, viewerID, videoID int64, pg pipeline.Pagination) (*pipeline.Page[types.CommentView], error) {
	if _, err := visibleVideo(ctx, s.Videos, viewerID, videoID); err != nil {
		return nil, err
	}
	page, err := s.Views.Comments(ctx, CommentListPipeline(videoID, viewerID, pg))
	return page, response.Wrap(err, "Failed to load comments")
}

func (s *CommentService) Create(ctx context.Context, actorID, videoID int64, text string) (*models.Comment, error) {
	text, err := commentText(text)
	if err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.Videos, actorID, videoID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:      snowflake.GenID(),
		VideoID: videoID,
		OwnerID: actorID,
		Text:    text,
	}
	if err := s.Comments.Create(ctx, comment); err != nil {
		return nil, response.Wrap(err, "Failed to add comment")
	}
	return comment, nil
}

func (s *CommentService) owned(ctx context.Context, actorID, commentID int64) (*models.Comment, error) {
	return loadOwned(ctx, s.Comments.FindByID, func(c *models.Comment) int64 { return c.OwnerID }, commentID, actorID, "Comment")
}

func (s *CommentService) Edit(ctx context.Context, actorID, commentID int64, text string) (*models.Comment, error) {
	text, err := commentText(text)
	if err != nil {
		return nil, err
	}
	comment, err := s.owned(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.Comments.UpdateFields(ctx, commentID, map[string]any{"text": text}); err != nil {
		return nil, response.Wrap(err, "Failed to update comment")
	}
	comment.Text = text
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actorID, commentID int64) error {
	if _, err := s.owned(ctx, actorID, commentID); err != nil {
		return err
	}
	return response.Wrap(s.Comments.DeleteCascade(ctx, commentID), "Failed to delete comment")
}

func (s *CommentService) Reply(ctx context.Context, actorID, commentID int64, text string) (*models.Reply, error) {
	text, err := commentText(text)
	if err != nil {
		return nil, err
	}
	comment, err := loadByID(ctx, s.Comments.FindByID, commentID, "Comment")
	if err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.Videos, actorID, comment.VideoID); err != nil {
		return nil, err
	}

	reply := models.Reply{
		ID:        snowflake.GenID(),
		UserID:    actorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.Comments.AppendReply(ctx, commentID, reply); err != nil {
		return nil, response.Wrap(err, "Failed to add reply")
	}
	return &reply, nil
}
