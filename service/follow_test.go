package service

import (
	"Streamify/models"
	"Streamify/pkg/pipeline"
	"Streamify/pkg/response"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionToggle(t *testing.T) {
	users := newFakeUsers(
		&models.User{ID: ownerID, Username: "a", Email: "a@x.io"},
		&models.User{ID: strangerID, Username: "c", Email: "c@x.io"},
	)
	svc := &SubscriptionService{
		Subscriptions: &fakeSubscriptions{users: users, pairs: map[[2]int64]bool{}},
		Users:         users,
		Views:         &fakeViews{t: t},
	}
	ctx := context.Background()

	res, err := svc.Toggle(ctx, ownerID, strangerID)
	require.NoError(t, err)
	assert.True(t, res.Subscribed)
	assert.Equal(t, int64(1), res.SubscribersCount)

	res, err = svc.Toggle(ctx, ownerID, strangerID)
	require.NoError(t, err)
	assert.False(t, res.Subscribed)
	assert.Equal(t, int64(0), res.SubscribersCount)

	_, err = svc.Toggle(ctx, ownerID, ownerID)
	assert.ErrorIs(t, err, response.ErrValidation)

	_, err = svc.Toggle(ctx, ownerID, 999)
	assert.ErrorIs(t, err, response.ErrNotFound)

	_, err = svc.Subscribers(ctx, ownerID, strangerID, pipeline.DefaultPagination())
	assert.NoError(t, err)
	_, err = svc.SubscribedChannels(ctx, ownerID, 999, pipeline.DefaultPagination())
	assert.ErrorIs(t, err, response.ErrNotFound)
}
