package service

import (
	"Streamify/models"
	"Streamify/pkg/response"
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		from   State
		action models.LikeType
		to     State
		delta  CounterDelta
		op     RowOp
	}{
		{StateNone, models.LikeTypeLike, StateLiked, CounterDelta{Likes: 1}, RowCreate},
		{StateNone, models.LikeTypeDislike, StateDisliked, CounterDelta{Dislikes: 1}, RowCreate},
		{StateLiked, models.LikeTypeLike, StateNone, CounterDelta{Likes: -1}, RowDelete},
		{StateLiked, models.LikeTypeDislike, StateDisliked, CounterDelta{Likes: -1, Dislikes: 1}, RowUpdate},
		{StateDisliked, models.LikeTypeDislike, StateNone, CounterDelta{Dislikes: -1}, RowDelete},
		{StateDisliked, models.LikeTypeLike, StateLiked, CounterDelta{Likes: 1, Dislikes: -1}, RowUpdate},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"_"+string(tc.action), func(t *testing.T) {
			to, delta, op := Transition(tc.from, tc.action)
			assert.Equal(t, tc.to, to)
			assert.Equal(t, tc.delta, delta)
			assert.Equal(t, tc.op, op)
		})
	}
}

func TestToggleLikeDislikeSequence(t *testing.T) {
	video := models.VideoTarget(10)
	svc := &EngagementService{Store: newFakeReactions(video)}
	ctx := context.Background()

	res, err := svc.Toggle(ctx, 2, video, models.LikeTypeLike)
	require.NoError(t, err)
	assert.Equal(t, string(StateLiked), res.State)
	assert.Equal(t, int64(1), res.Likes)
	assert.Equal(t, int64(0), res.Dislikes)

	res, err = svc.Toggle(ctx, 2, video, models.LikeTypeDislike)
	require.NoError(t, err)
	assert.Equal(t, string(StateDisliked), res.State)
	assert.Equal(t, int64(0), res.Likes)
	assert.Equal(t, int64(1), res.Dislikes)

	res, err = svc.Toggle(ctx, 2, video, models.LikeTypeDislike)
	require.NoError(t, err)
	assert.Equal(t, string(StateNone), res.State)
	assert.Equal(t, int64(0), res.Likes)
	assert.Equal(t, int64(0), res.Dislikes)
}

func TestToggleLikeTwiceRestoresCounters(t *testing.T) {
	comment := models.CommentTarget(7)
	store := newFakeReactions(comment)
	store.counters[comment] = CounterDelta{Likes: 4, Dislikes: 2}
	svc := &EngagementService{Store: store}

	_, err := svc.Toggle(context.Background(), 1, comment, models.LikeTypeLike)
	require.NoError(t, err)
	res, err := svc.Toggle(context.Background(), 1, comment, models.LikeTypeLike)
	require.NoError(t, err)

	assert.Equal(t, string(StateNone), res.State)
	assert.Equal(t, int64(4), res.Likes)
	assert.Equal(t, int64(2), res.Dislikes)
	assert.Empty(t, store.rows)
}

func TestToggleClampsDriftedCounters(t *testing.T) {
	video := models.VideoTarget(3)
	store := newFakeReactions(video)
	// 计数与记录不一致时不能变成负数
	store.rows[reactionKey{1, video}] = models.Like{ID: 99, ActorID: 1, Target: video, Type: models.LikeTypeLike}
	svc := &EngagementService{Store: store}

	res, err := svc.Toggle(context.Background(), 1, video, models.LikeTypeDislike)
	require.NoError(t, err)
	assert.Equal(t, string(StateDisliked), res.State)
	assert.Equal(t, int64(0), res.Likes)
	assert.Equal(t, int64(1), res.Dislikes)
}

func TestToggleRandomSequencesKeepInvariants(t *testing.T) {
	targets := []models.Target{models.VideoTarget(1), models.VideoTarget(2), models.CommentTarget(3)}
	store := newFakeReactions(targets...)
	svc := &EngagementService{Store: store}
	rng := rand.New(rand.NewSource(42))
	actions := []models.LikeType{models.LikeTypeLike, models.LikeTypeDislike}

	for i := 0; i < 2000; i++ {
		target := targets[rng.Intn(len(targets))]
		actor := int64(rng.Intn(8) + 1)
		_, err := svc.Toggle(context.Background(), actor, target, actions[rng.Intn(2)])
		require.NoError(t, err)
	}

	for _, target := range targets {
		var likes, dislikes int64
		for key, row := range store.rows {
			if key.target != target {
				continue
			}
			if row.Type == models.LikeTypeLike {
				likes++
			} else {
				dislikes++
			}
		}
		c := store.counters[target]
		assert.Equal(t, likes, c.Likes, target.String())
		assert.Equal(t, dislikes, c.Dislikes, target.String())
		assert.GreaterOrEqual(t, c.Likes, int64(0))
		assert.GreaterOrEqual(t, c.Dislikes, int64(0))
	}
}

func TestToggleConcurrentActors(t *testing.T) {
	video := models.VideoTarget(5)
	store := newFakeReactions(video)
	svc := &EngagementService{Store: store, Locker: fakeLocker{}}

	var wg sync.WaitGroup
	for actor := int64(1); actor <= 50; actor++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Toggle(context.Background(), actor, video, models.LikeTypeLike)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), store.counters[video].Likes)
	assert.Len(t, store.rows, 50)
}

func TestToggleErrors(t *testing.T) {
	video := models.VideoTarget(1)
	svc := &EngagementService{Store: newFakeReactions(video)}
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 1, models.VideoTarget(404), models.LikeTypeLike)
	assert.ErrorIs(t, err, response.ErrNotFound)
	assert.Equal(t, "Video not found", err.Error())

	_, err = svc.Toggle(ctx, 1, models.CommentTarget(404), models.LikeTypeLike)
	assert.Equal(t, "Comment not found", err.Error())

	_, err = svc.Toggle(ctx, 1, video, models.LikeType("love"))
	assert.ErrorIs(t, err, response.ErrValidation)

	_, err = svc.Toggle(ctx, 1, models.VideoTarget(0), models.LikeTypeLike)
	assert.ErrorIs(t, err, response.ErrValidation)

	_, err = svc.Toggle(ctx, 0, video, models.LikeTypeLike)
	assert.ErrorIs(t, err, response.ErrUnauthorized)

	busy := &EngagementService{Store: newFakeReactions(video), Locker: fakeLocker{err: errors.New("taken")}}
	_, err = busy.Toggle(ctx, 1, video, models.LikeTypeLike)
	assert.ErrorIs(t, err, response.ErrConflict)
}
