package service

import (
	"Streamify/models"
	"Streamify/pkg/encrypt"
	"Streamify/pkg/response"
	"Streamify/pkg/storage"
	"Streamify/pkg/upload"
	"Streamify/types"
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, users *fakeUsers, store *fakeStore) (*UserService, *fakeViews) {
	views := &fakeViews{t: t}
	return &UserService{Users: users, Views: views, Media: newMedia(store), Config: testConfig()}, views
}

func registerReq() *types.RegisterReq {
	return &types.RegisterReq{FullName: "Ann", Email: "Ann@X.io", Username: "Ann", Password: "secret1"}
}

func TestRegisterLowercasesAndUploads(t *testing.T) {
	users := newFakeUsers()
	store := &fakeStore{}
	svc, _ := newUserService(t, users, store)

	avatar := stagedFile(t, FieldProfileImage, storage.KindImage, ".png")
	u, err := svc.Register(context.Background(), registerReq(), upload.Files{FieldProfileImage: avatar})
	require.NoError(t, err)

	assert.Equal(t, "ann", u.Username)
	assert.Equal(t, "ann@x.io", u.Email)
	assert.NotEqual(t, "secret1", u.Password)
	assert.True(t, strings.HasPrefix(u.ProfileImageID, "streamify/image/"))
	assert.Len(t, store.uploads, 1)
	_, err = os.Stat(avatar.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestRegisterConflictCleansTempFiles(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 1, Username: "ann", Email: "other@x.io"})
	store := &fakeStore{}
	svc, _ := newUserService(t, users, store)

	banner := stagedFile(t, FieldBannerImage, storage.KindImage, ".png")
	_, err := svc.Register(context.Background(), registerReq(), upload.Files{FieldBannerImage: banner})
	assert.ErrorIs(t, err, response.ErrConflict)
	assert.Empty(t, store.uploads)
	_, statErr := os.Stat(banner.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoginAndRefreshRotation(t *testing.T) {
	hash, err := encrypt.HashPassword("secret1")
	require.NoError(t, err)
	users := newFakeUsers(&models.User{ID: 1, Username: "ann", Email: "ann@x.io", Password: hash})
	svc, _ := newUserService(t, users, &fakeStore{})
	ctx := context.Background()

	_, err = svc.Login(ctx, &types.LoginReq{Username: "ann", Password: "wrong"})
	assert.ErrorIs(t, err, response.ErrUnauthorized)
	_, err = svc.Login(ctx, &types.LoginReq{Email: "nobody@x.io", Password: "secret1"})
	assert.ErrorIs(t, err, response.ErrUnauthorized)
	_, err = svc.Login(ctx, &types.LoginReq{Password: "secret1"})
	assert.ErrorIs(t, err, response.ErrValidation)

	resp, err := svc.Login(ctx, &types.LoginReq{Email: "ANN@x.io", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	pair, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = svc.RefreshToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, response.ErrUnauthorized, "refresh tokens are single use")

	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, response.ErrUnauthorized)

	require.NoError(t, svc.Logout(ctx, 1))
	_, err = svc.RefreshToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, response.ErrUnauthorized)
}

func loggedInUser(t *testing.T) (*UserService, *fakeUsers, string) {
	hash, err := encrypt.HashPassword("secret1")
	require.NoError(t, err)
	users := newFakeUsers(&models.User{ID: 1, Username: "ann", Email: "ann@x.io", Password: hash})
	svc, _ := newUserService(t, users, &fakeStore{})
	resp, err := svc.Login(context.Background(), &types.LoginReq{Username: "ann", Password: "secret1"})
	require.NoError(t, err)
	return svc, users, resp.RefreshToken
}

func TestRefreshLosesToConcurrentRotation(t *testing.T) {
	svc, users, token := loggedInUser(t)
	// 另一个请求在读取与更新之间完成了轮换
	users.beforeRotate = func() {
		users.mu.Lock()
		users.items[1].RefreshToken = "rotated-elsewhere"
		users.mu.Unlock()
	}

	_, err := svc.RefreshToken(context.Background(), token)
	assert.ErrorIs(t, err, response.ErrUnauthorized)
	assert.Equal(t, "rotated-elsewhere", users.items[1].RefreshToken)
}

func TestConcurrentRefreshSingleWinner(t *testing.T) {
	svc, users, token := loggedInUser(t)

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pair, err := svc.RefreshToken(context.Background(), token)
			if err != nil {
				assert.ErrorIs(t, err, response.ErrUnauthorized)
				return
			}
			mu.Lock()
			winners = append(winners, pair.RefreshToken)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, winners[0], users.items[1].RefreshToken)
}

func TestChangePassword(t *testing.T) {
	hash, err := encrypt.HashPassword("secret1")
	require.NoError(t, err)
	users := newFakeUsers(&models.User{ID: 1, Username: "ann", Email: "ann@x.io", Password: hash})
	svc, _ := newUserService(t, users, &fakeStore{})

	err = svc.ChangePassword(context.Background(), 1, &types.ChangePasswordReq{OldPassword: "nope", NewPassword: "secret2"})
	assert.ErrorIs(t, err, response.ErrValidation)

	require.NoError(t, svc.ChangePassword(context.Background(), 1, &types.ChangePasswordReq{OldPassword: "secret1", NewPassword: "secret2"}))
	assert.True(t, encrypt.VerifyPassword(users.items[1].Password, "secret2"))
}

func TestUpdateProfile(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 1, Username: "ann", Email: "ann@x.io"})
	svc, _ := newUserService(t, users, &fakeStore{})

	_, err := svc.UpdateProfile(context.Background(), 1, &types.UpdateProfileReq{})
	assert.ErrorIs(t, err, response.ErrValidation)

	name, email := " Ann B ", "NEW@x.io"
	u, err := svc.UpdateProfile(context.Background(), 1, &types.UpdateProfileReq{FullName: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Ann B", u.FullName)
	assert.Equal(t, "new@x.io", u.Email)
}

func TestUpdateImageReplacesOldObject(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 1, Username: "ann", Email: "ann@x.io", ProfileImageID: "streamify/image/old.png"})
	store := &fakeStore{}
	svc, _ := newUserService(t, users, store)

	u, err := svc.UpdateImage(context.Background(), 1, FieldProfileImage, stagedFile(t, FieldProfileImage, storage.KindImage, ".png"))
	require.NoError(t, err)
	assert.Equal(t, store.uploads[0], u.ProfileImageID)
	assert.Equal(t, []string{"streamify/image/old.png"}, store.deletes)
}

func TestChannelProfileShowsEmailOnlyToSelf(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 1, Username: "ann", Email: "ann@x.io"})
	svc, views := newUserService(t, users, &fakeStore{})
	views.profile = &types.ChannelProfile{ID: 1, Username: "ann"}

	_, err := svc.ChannelProfile(context.Background(), 2, "ANN")
	require.NoError(t, err)
	_, err = svc.ChannelProfile(context.Background(), 1, "ann")
	require.NoError(t, err)
	require.Len(t, views.pipelines, 2)

	other, err := views.pipelines[0].Compile()
	require.NoError(t, err)
	self, err := views.pipelines[1].Compile()
	require.NoError(t, err)
	assert.NotContains(t, other.SQL, "`email`")
	assert.Contains(t, self.SQL, "`u`.`email`")

	_, err = svc.ChannelProfile(context.Background(), 1, "ghost")
	assert.ErrorIs(t, err, response.ErrNotFound)
}
