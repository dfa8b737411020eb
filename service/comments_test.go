package service

import (
	"Streamify/models"
	"Streamify/pkg/pipeline"
	"Streamify/pkg/response"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commentID int64 = 400

func newCommentService(t *testing.T, videos ...*models.Video) (*CommentService, *fakeComments) {
	comments := newFakeComments(&models.Comment{ID: commentID, VideoID: videoID, OwnerID: ownerID, Text: "hi"})
	return &CommentService{
		Comments: comments,
		Videos:   newFakeVideos(videos...),
		Views:    &fakeViews{t: t},
	}, comments
}

func TestCommentTextLimits(t *testing.T) {
	svc, comments := newCommentService(t, ownedVideo())
	ctx := context.Background()

	_, err := svc.Create(ctx, strangerID, videoID, "   ")
	assert.ErrorIs(t, err, response.ErrValidation)

	_, err = svc.Create(ctx, strangerID, videoID, strings.Repeat("a", models.CommentMaxLength+1))
	assert.ErrorIs(t, err, response.ErrValidation)

	c, err := svc.Create(ctx, strangerID, videoID, strings.Repeat("好", models.CommentMaxLength))
	require.NoError(t, err)
	assert.Equal(t, strangerID, c.OwnerID)
	assert.Equal(t, 1, comments.writes)
}

func TestCommentOnMissingOrHiddenVideo(t *testing.T) {
	hidden := ownedVideo()
	hidden.Visibility = models.VisibilityPrivate
	svc, _ := newCommentService(t, hidden)
	ctx := context.Background()

	_, err := svc.Create(ctx, strangerID, 999, "x")
	assert.ErrorIs(t, err, response.ErrNotFound)

	_, err = svc.Create(ctx, strangerID, videoID, "x")
	assert.ErrorIs(t, err, response.ErrNotFound)

	_, err = svc.List(ctx, strangerID, videoID, pipeline.DefaultPagination())
	assert.ErrorIs(t, err, response.ErrNotFound)

	_, err = svc.List(ctx, ownerID, videoID, pipeline.DefaultPagination())
	assert.NoError(t, err)
}

func TestCommentOwnership(t *testing.T) {
	svc, comments := newCommentService(t, ownedVideo())
	ctx := context.Background()

	_, err := svc.Edit(ctx, strangerID, commentID, "changed")
	assert.ErrorIs(t, err, response.ErrForbidden)
	err = svc.Delete(ctx, strangerID, commentID)
	assert.ErrorIs(t, err, response.ErrForbidden)
	assert.Zero(t, comments.writes)

	c, err := svc.Edit(ctx, ownerID, commentID, " changed ")
	require.NoError(t, err)
	assert.Equal(t, "changed", c.Text)

	require.NoError(t, svc.Delete(ctx, ownerID, commentID))
	assert.NotContains(t, comments.items, commentID)
}

func TestCommentReply(t *testing.T) {
	svc, comments := newCommentService(t, ownedVideo())

	reply, err := svc.Reply(context.Background(), strangerID, commentID, "thanks")
	require.NoError(t, err)
	assert.Equal(t, strangerID, reply.UserID)
	require.Len(t, comments.items[commentID].Replies, 1)
	assert.Equal(t, reply.ID, comments.items[commentID].Replies[0].ID)

	_, err = svc.Reply(context.Background(), strangerID, 1, "thanks")
	assert.ErrorIs(t, err, response.ErrNotFound)
}

func TestCommentReplyOnHiddenVideo(t *testing.T) {
	hidden := ownedVideo()
	hidden.Visibility = models.VisibilityPrivate
	svc, comments := newCommentService(t, hidden)
	ctx := context.Background()

	_, err := svc.Reply(ctx, strangerID, commentID, "sneaky")
	assert.ErrorIs(t, err, response.ErrNotFound)
	assert.Empty(t, comments.items[commentID].Replies)
	assert.Zero(t, comments.writes)

	_, err = svc.Reply(ctx, ownerID, commentID, "mine")
	require.NoError(t, err)
	assert.Len(t, comments.items[commentID].Replies, 1)
}
