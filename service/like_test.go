package service

import (
	"Streamify/models"
	"Streamify/pkg/response"
	"Streamify/types"
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLikeService(t *testing.T, video *models.Video) (*LikeService, *fakeReactions) {
	store := newFakeReactions(models.VideoTarget(video.ID), models.CommentTarget(commentID))
	return &LikeService{
		Engagement: &EngagementService{Store: store},
		Videos:     newFakeVideos(video),
		Comments:   newFakeComments(&models.Comment{ID: commentID, VideoID: video.ID, OwnerID: ownerID, Text: "hi"}),
		Views:      &fakeViews{t: t},
	}, store
}

func TestLikeToggleOnVisibleVideo(t *testing.T) {
	svc, _ := newLikeService(t, ownedVideo())
	ctx := context.Background()

	res, err := svc.ToggleVideo(ctx, strangerID, &types.ToggleVideoLikeReq{VideoID: strconv.FormatInt(videoID, 10), Type: "like"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Likes)

	res, err = svc.ToggleComment(ctx, strangerID, &types.ToggleCommentLikeReq{CommentID: strconv.FormatInt(commentID, 10), Type: "dislike"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Dislikes)
}

func TestLikeToggleOnHiddenVideoIsNotFound(t *testing.T) {
	hidden := ownedVideo()
	hidden.Visibility = models.VisibilityPrivate
	svc, store := newLikeService(t, hidden)
	ctx := context.Background()

	_, err := svc.ToggleVideo(ctx, strangerID, &types.ToggleVideoLikeReq{VideoID: strconv.FormatInt(videoID, 10), Type: "like"})
	assert.ErrorIs(t, err, response.ErrNotFound)
	_, err = svc.ToggleComment(ctx, strangerID, &types.ToggleCommentLikeReq{CommentID: strconv.FormatInt(commentID, 10), Type: "like"})
	assert.ErrorIs(t, err, response.ErrNotFound)
	assert.Empty(t, store.rows)
	assert.Equal(t, CounterDelta{}, store.counters[models.VideoTarget(videoID)])

	_, err = svc.ToggleVideo(ctx, ownerID, &types.ToggleVideoLikeReq{VideoID: strconv.FormatInt(videoID, 10), Type: "like"})
	assert.NoError(t, err)
}

func TestLikeToggleOnDraftVideoIsNotFound(t *testing.T) {
	draft := ownedVideo()
	draft.IsPublished = false
	svc, store := newLikeService(t, draft)

	_, err := svc.ToggleComment(context.Background(), strangerID, &types.ToggleCommentLikeReq{CommentID: strconv.FormatInt(commentID, 10), Type: "like"})
	assert.ErrorIs(t, err, response.ErrNotFound)
	_, err = svc.ToggleComment(context.Background(), strangerID, &types.ToggleCommentLikeReq{CommentID: "999", Type: "like"})
	assert.ErrorIs(t, err, response.ErrNotFound)
	assert.Empty(t, store.rows)
}
